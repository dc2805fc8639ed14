package avif

import (
	"fmt"

	"github.com/deepteams/avif/internal/dsp"
)

// Unpremultiply reverses premultiplied alpha in place: each color channel
// becomes round(c*MAX/alpha), saturated at MAX, where MAX is 255 or 65535.
// Pixels with zero alpha are left unchanged. img must be *RGBA8 or
// *RGBA16; other variants and nil fail with ErrNoAlpha.
func Unpremultiply(img Image) error {
	return unpremultiply(img, DefaultOptions())
}

func unpremultiply(img Image, o *Options) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrNoAlpha)
	}
	w, h := img.Width(), img.Height()
	var bands int
	switch p := img.(type) {
	case *RGBA8:
		bands = forEachBand(w, h, o.threads(), func(p0, p1 int) {
			dsp.UnpremultiplyRGBA8(p.Pix[4*p0 : 4*p1])
		})
	case *RGBA16:
		bands = forEachBand(w, h, o.threads(), func(p0, p1 int) {
			dsp.UnpremultiplyRGBA16(p.Pix[4*p0 : 4*p1])
		})
	default:
		return fmt.Errorf("%w: cannot unpremultiply %v", ErrNoAlpha, img.Format())
	}
	o.logger().Debug("avif: unpremultiplied alpha", "format", img.Format(), "bands", bands)
	return nil
}
