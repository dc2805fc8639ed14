package avif

import (
	"fmt"

	"github.com/deepteams/avif/internal/dsp"
	"github.com/deepteams/avif/yuv"
)

// ConvertFrame converts a decoded color frame into an owned Image: RGB8 or
// RGB16 for YUV rows, Gray8 or Gray16 for monochrome rows. All row data is
// consumed before ConvertFrame returns.
func ConvertFrame(f Frame, opts *Options) (Image, error) {
	img, err := convertColor(f, optionsOrDefault(opts))
	if err != nil {
		return nil, fmt.Errorf("avif: color conversion: %w", err)
	}
	return img, nil
}

func convertColor(f Frame, o *Options) (Image, error) {
	rows, err := f.Rows()
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	log := o.logger()

	switch r := rows.(type) {
	case YUV8:
		mc := matrixOf(f, o.colorMatrix())
		log.Debug("avif: converting color frame",
			"width", r.Y.Width, "height", r.Y.Height, "depth", 8,
			"sampling", r.Sampling, "range", f.Range(), "matrix", mc)
		return convertYUV8(r, f.Range(), mc)
	case YUV16:
		mc := matrixOf(f, o.colorMatrix())
		log.Debug("avif: converting color frame",
			"width", r.Y.Width, "height", r.Y.Height, "depth", r.Depth,
			"sampling", r.Sampling, "range", f.Range(), "matrix", mc)
		return convertYUV16(r, f.Range(), mc)
	case Mono8, Mono16:
		mc := matrixOf(f, o.alphaMatrix())
		log.Debug("avif: converting monochrome frame", "range", f.Range(), "matrix", mc)
		g, err := toGray(rows, f.Range(), mc)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("%w: rows of type %T", ErrInvalidRows, rows)
	}
}

func convertYUV8(r YUV8, rng yuv.Range, mc yuv.MatrixCoefficients) (Image, error) {
	conv, err := yuv.NewConverter8(rng, mc)
	if err != nil {
		return nil, err
	}
	y, err := newPlane8(r.Y, "Y")
	if err != nil {
		return nil, err
	}
	u, err := newPlane8(r.U, "U")
	if err != nil {
		return nil, err
	}
	v, err := newPlane8(r.V, "V")
	if err != nil {
		return nil, err
	}
	seq, err := dsp.Upsample[uint8](y, u, v, r.Sampling)
	if err != nil {
		return nil, err
	}

	out := NewRGB8(r.Y.Width, r.Y.Height)
	i := 0
	for px := range seq {
		out.Pix[i+0], out.Pix[i+1], out.Pix[i+2] = conv.ToRGB(px.Y, px.U, px.V)
		i += 3
	}
	return out, nil
}

func convertYUV16(r YUV16, rng yuv.Range, mc yuv.MatrixCoefficients) (Image, error) {
	conv, err := yuv.NewConverter16(rng, mc, r.Depth)
	if err != nil {
		return nil, err
	}
	planes := make([]*plane16, 0, 3)
	defer func() {
		for _, p := range planes {
			p.release()
		}
	}()
	for _, p := range []struct {
		plane Plane
		name  string
	}{{r.Y, "Y"}, {r.U, "U"}, {r.V, "V"}} {
		pr, err := newPlane16(p.plane, p.name)
		if err != nil {
			return nil, err
		}
		planes = append(planes, pr)
	}
	seq, err := dsp.Upsample[uint16](planes[0], planes[1], planes[2], r.Sampling)
	if err != nil {
		return nil, err
	}

	out := NewRGB16(r.Y.Width, r.Y.Height)
	i := 0
	for px := range seq {
		out.Pix[i+0], out.Pix[i+1], out.Pix[i+2] = conv.ToRGB(px.Y, px.U, px.V)
		i += 3
	}
	return out, nil
}

// toGray converts the luma plane of rows to a single channel image. Each
// luma sample is converted with neutral chroma and the green channel is
// kept; chroma planes, if any, are ignored.
func toGray(rows Rows, rng yuv.Range, mc yuv.MatrixCoefficients) (alphaImage, error) {
	switch r := rows.(type) {
	case YUV8:
		return gray8(r.Y, rng, mc)
	case Mono8:
		return gray8(r.Y, rng, mc)
	case YUV16:
		return gray16(r.Y, r.Depth, rng, mc)
	case Mono16:
		return gray16(r.Y, r.Depth, rng, mc)
	default:
		return nil, fmt.Errorf("%w: rows of type %T", ErrInvalidRows, rows)
	}
}

func gray8(p Plane, rng yuv.Range, mc yuv.MatrixCoefficients) (alphaImage, error) {
	conv, err := yuv.NewConverter8(rng, mc)
	if err != nil {
		return nil, err
	}
	y, err := newPlane8(p, "Y")
	if err != nil {
		return nil, err
	}
	n := conv.Neutral()
	out := NewGray8(p.Width, p.Height)
	for row := 0; row < p.Height; row++ {
		dst := out.Pix[row*p.Width : (row+1)*p.Width]
		for x, l := range y.Row(row) {
			_, dst[x], _ = conv.ToRGB(l, n, n)
		}
	}
	return out, nil
}

func gray16(p Plane, depth int, rng yuv.Range, mc yuv.MatrixCoefficients) (alphaImage, error) {
	conv, err := yuv.NewConverter16(rng, mc, depth)
	if err != nil {
		return nil, err
	}
	y, err := newPlane16(p, "Y")
	if err != nil {
		return nil, err
	}
	defer y.release()
	n := conv.Neutral()
	out := NewGray16(p.Width, p.Height)
	for row := 0; row < p.Height; row++ {
		dst := out.Pix[row*p.Width : (row+1)*p.Width]
		for x, l := range y.Row(row) {
			_, dst[x], _ = conv.ToRGB(l, n, n)
		}
	}
	return out, nil
}
