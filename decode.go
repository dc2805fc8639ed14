package avif

import (
	"errors"
	"fmt"

	"github.com/deepteams/avif/internal/dsp"
	"github.com/deepteams/avif/yuv"
)

// Errors returned by the conversion pipeline. Errors from the FrameDecoder
// are wrapped, not replaced.
var (
	ErrNoFrame                  = errors.New("avif: container has no primary item")
	ErrInvalidChromaFormat      = dsp.ErrInvalidChromaFormat
	ErrInvalidPlane             = dsp.ErrInvalidPlane
	ErrUnsupportedColorMetadata = yuv.ErrUnsupportedColorMetadata
	ErrDimensionMismatch        = errors.New("avif: color and alpha dimensions differ")
	ErrIllegalComposite         = errors.New("avif: illegal color and alpha combination")
	ErrNoAlpha                  = errors.New("avif: image has no alpha channel")
	ErrInvalidRows              = errors.New("avif: unknown plane layout")
	ErrInvalidImage             = errors.New("avif: invalid image buffer")
)

// Decode decodes the items of c with fd and returns the final image.
//
// The alpha item, when present, is decoded and converted first so that no
// frame borrowed from fd is still in use when the primary item is decoded.
// With alpha the result is *RGBA8 or *RGBA16, unpremultiplied when
// c.PremultipliedAlpha is set; without alpha it is whatever ConvertFrame
// produces. Any failure aborts the whole decode and no image is returned.
func Decode(fd FrameDecoder, c Container, opts *Options) (Image, error) {
	o := optionsOrDefault(opts)
	log := o.logger()
	if len(c.Primary) == 0 {
		return nil, ErrNoFrame
	}

	var alpha alphaImage
	if c.Alpha != nil {
		f, err := fd.DecodeFrame(c.Alpha)
		if err != nil {
			return nil, fmt.Errorf("avif: decoding alpha item: %w", err)
		}
		alpha, err = extractAlpha(f, o)
		if err != nil {
			return nil, fmt.Errorf("avif: alpha extraction: %w", err)
		}
	}

	f, err := fd.DecodeFrame(c.Primary)
	if err != nil {
		return nil, fmt.Errorf("avif: decoding primary item: %w", err)
	}
	color, err := convertColor(f, o)
	if err != nil {
		return nil, fmt.Errorf("avif: color conversion: %w", err)
	}
	if alpha == nil {
		return color, nil
	}

	img, err := composite(color, alpha, o.threads())
	if err != nil {
		return nil, fmt.Errorf("avif: compositing: %w", err)
	}
	log.Debug("avif: composited alpha",
		"color", color.Format(), "alpha", alpha.Format(), "result", img.Format())

	if c.PremultipliedAlpha {
		if err := unpremultiply(img, o); err != nil {
			return nil, fmt.Errorf("avif: unpremultiply: %w", err)
		}
	}
	return img, nil
}
