package dsp

// Nearest-neighbour chroma upsampling.
//
// Subsampled chroma is expanded to the luma grid by sharing each chroma
// sample with the luma samples it covers:
//   4:4:4  one chroma sample per luma sample
//   4:2:2  one chroma sample per horizontal pair
//   4:2:0  one chroma sample per 2x2 block
// No interpolation is performed, so every luma sample in a block sees the
// exact chroma code that was decoded for it.

import (
	"errors"
	"fmt"
	"iter"

	"github.com/deepteams/avif/yuv"
)

// Errors returned by Upsample.
var (
	ErrInvalidChromaFormat = errors.New("chroma upsampling requested for monochrome planes")
	ErrInvalidPlane        = errors.New("plane geometry does not match chroma sampling")
)

// Sample is a stored plane sample: 8-bit, or 9 to 16 bits widened to uint16.
type Sample interface {
	~uint8 | ~uint16
}

// Triple is one luma-aligned YUV sample.
type Triple[T Sample] struct {
	Y, U, V T
}

// Rows gives row access to a plane. Row(y) returns at least Width() samples
// and may reuse its backing storage on the next call.
type Rows[T Sample] interface {
	Width() int
	Height() int
	Row(y int) []T
}

// chromaShift returns the horizontal and vertical subsampling shifts.
func chromaShift(cs yuv.ChromaSampling) (xs, ys uint, err error) {
	switch cs {
	case yuv.Cs444:
		return 0, 0, nil
	case yuv.Cs422:
		return 1, 0, nil
	case yuv.Cs420:
		return 1, 1, nil
	default:
		return 0, 0, fmt.Errorf("%w (%v)", ErrInvalidChromaFormat, cs)
	}
}

// Upsample returns a single-pass sequence of Width()*Height() triples in
// row-major order, one per luma sample of y.
//
// Monochrome input is rejected with ErrInvalidChromaFormat; callers route
// luma-only planes to the gray path instead. Chroma planes smaller than the
// sampling requires are rejected with ErrInvalidPlane.
func Upsample[T Sample](y, u, v Rows[T], cs yuv.ChromaSampling) (iter.Seq[Triple[T]], error) {
	xs, ys, err := chromaShift(cs)
	if err != nil {
		return nil, err
	}
	width, height := y.Width(), y.Height()
	cw, ch := cs.ChromaSize(width, height)
	for _, p := range [...]Rows[T]{u, v} {
		if p.Width() < cw || p.Height() < ch {
			return nil, fmt.Errorf("%w: %v chroma %dx%d for %dx%d luma",
				ErrInvalidPlane, cs, p.Width(), p.Height(), width, height)
		}
	}

	return func(yield func(Triple[T]) bool) {
		for row := 0; row < height; row++ {
			yr := y.Row(row)[:width]
			ur := u.Row(row >> ys)
			vr := v.Row(row >> ys)
			for x, l := range yr {
				if !yield(Triple[T]{Y: l, U: ur[x>>xs], V: vr[x>>xs]}) {
					return
				}
			}
		}
	}, nil
}
