package avif

import (
	"fmt"

	"github.com/deepteams/avif/internal/dsp"
)

// composite merges a color image with an alpha image of the same size into
// RGBA8 or RGBA16. The result is 16-bit whenever either input is; 8-bit
// samples are widened by bit replication.
//
// A color image that already has alpha is only accepted as RGBA8 with
// 8-bit alpha, whose alpha channel is replaced. Any other combination with
// an alpha-carrying color image fails with ErrIllegalComposite.
func composite(color Image, alpha alphaImage, threads int) (Image, error) {
	w, h := color.Width(), color.Height()
	if alpha.Width() != w || alpha.Height() != h {
		return nil, fmt.Errorf("%w: color %dx%d, alpha %dx%d",
			ErrDimensionMismatch, w, h, alpha.Width(), alpha.Height())
	}
	bands := func(fn func(p0, p1 int)) { forEachBand(w, h, threads, fn) }

	switch c := color.(type) {
	case *RGB8:
		switch a := alpha.(type) {
		case *Gray8:
			out := NewRGBA8(w, h)
			bands(func(p0, p1 int) {
				for i := p0; i < p1; i++ {
					out.Pix[4*i+0] = c.Pix[3*i+0]
					out.Pix[4*i+1] = c.Pix[3*i+1]
					out.Pix[4*i+2] = c.Pix[3*i+2]
					out.Pix[4*i+3] = a.Pix[i]
				}
			})
			return out, nil
		case *Gray16:
			out := NewRGBA16(w, h)
			bands(func(p0, p1 int) {
				for i := p0; i < p1; i++ {
					out.Pix[4*i+0] = dsp.Widen8(c.Pix[3*i+0])
					out.Pix[4*i+1] = dsp.Widen8(c.Pix[3*i+1])
					out.Pix[4*i+2] = dsp.Widen8(c.Pix[3*i+2])
					out.Pix[4*i+3] = a.Pix[i]
				}
			})
			return out, nil
		}
	case *RGB16:
		switch a := alpha.(type) {
		case *Gray8:
			out := NewRGBA16(w, h)
			bands(func(p0, p1 int) {
				for i := p0; i < p1; i++ {
					out.Pix[4*i+0] = c.Pix[3*i+0]
					out.Pix[4*i+1] = c.Pix[3*i+1]
					out.Pix[4*i+2] = c.Pix[3*i+2]
					out.Pix[4*i+3] = dsp.Widen8(a.Pix[i])
				}
			})
			return out, nil
		case *Gray16:
			out := NewRGBA16(w, h)
			bands(func(p0, p1 int) {
				for i := p0; i < p1; i++ {
					out.Pix[4*i+0] = c.Pix[3*i+0]
					out.Pix[4*i+1] = c.Pix[3*i+1]
					out.Pix[4*i+2] = c.Pix[3*i+2]
					out.Pix[4*i+3] = a.Pix[i]
				}
			})
			return out, nil
		}
	case *RGBA8:
		if a, ok := alpha.(*Gray8); ok {
			out := NewRGBA8(w, h)
			bands(func(p0, p1 int) {
				copy(out.Pix[4*p0:4*p1], c.Pix[4*p0:4*p1])
				for i := p0; i < p1; i++ {
					out.Pix[4*i+3] = a.Pix[i]
				}
			})
			return out, nil
		}
	case *Gray8:
		switch a := alpha.(type) {
		case *Gray8:
			out := NewRGBA8(w, h)
			bands(func(p0, p1 int) {
				for i := p0; i < p1; i++ {
					g := c.Pix[i]
					out.Pix[4*i+0] = g
					out.Pix[4*i+1] = g
					out.Pix[4*i+2] = g
					out.Pix[4*i+3] = a.Pix[i]
				}
			})
			return out, nil
		case *Gray16:
			out := NewRGBA16(w, h)
			bands(func(p0, p1 int) {
				for i := p0; i < p1; i++ {
					g := dsp.Widen8(c.Pix[i])
					out.Pix[4*i+0] = g
					out.Pix[4*i+1] = g
					out.Pix[4*i+2] = g
					out.Pix[4*i+3] = a.Pix[i]
				}
			})
			return out, nil
		}
	case *Gray16:
		switch a := alpha.(type) {
		case *Gray8:
			out := NewRGBA16(w, h)
			bands(func(p0, p1 int) {
				for i := p0; i < p1; i++ {
					g := c.Pix[i]
					out.Pix[4*i+0] = g
					out.Pix[4*i+1] = g
					out.Pix[4*i+2] = g
					out.Pix[4*i+3] = dsp.Widen8(a.Pix[i])
				}
			})
			return out, nil
		case *Gray16:
			out := NewRGBA16(w, h)
			bands(func(p0, p1 int) {
				for i := p0; i < p1; i++ {
					g := c.Pix[i]
					out.Pix[4*i+0] = g
					out.Pix[4*i+1] = g
					out.Pix[4*i+2] = g
					out.Pix[4*i+3] = a.Pix[i]
				}
			})
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: %v color with %v alpha",
		ErrIllegalComposite, color.Format(), alpha.Format())
}
