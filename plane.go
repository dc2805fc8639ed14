package avif

import (
	"encoding/binary"
	"fmt"

	"github.com/deepteams/avif/internal/dsp"
	"github.com/deepteams/avif/internal/pool"
)

// checkPlane validates the geometry of p for samples of bps bytes and
// returns its effective stride.
func checkPlane(p Plane, bps int, name string) (int, error) {
	if p.Width < 0 || p.Height < 0 {
		return 0, fmt.Errorf("%w: %s plane %dx%d", dsp.ErrInvalidPlane, name, p.Width, p.Height)
	}
	rowBytes := p.Width * bps
	stride := p.Stride
	if stride == 0 {
		stride = rowBytes
	}
	if stride < rowBytes {
		return 0, fmt.Errorf("%w: %s plane stride %d < %d", dsp.ErrInvalidPlane, name, stride, rowBytes)
	}
	if p.Height > 0 {
		if need := (p.Height-1)*stride + rowBytes; len(p.Data) < need {
			return 0, fmt.Errorf("%w: %s plane holds %d bytes, need %d", dsp.ErrInvalidPlane, name, len(p.Data), need)
		}
	}
	return stride, nil
}

// plane8 reads rows of an 8-bit plane in place.
type plane8 struct {
	p      Plane
	stride int
}

func newPlane8(p Plane, name string) (*plane8, error) {
	stride, err := checkPlane(p, 1, name)
	if err != nil {
		return nil, err
	}
	return &plane8{p: p, stride: stride}, nil
}

func (r *plane8) Width() int  { return r.p.Width }
func (r *plane8) Height() int { return r.p.Height }

func (r *plane8) Row(y int) []uint8 {
	off := y * r.stride
	return r.p.Data[off : off+r.p.Width]
}

// plane16 decodes rows of a native-endian 16-bit plane into a pooled
// scratch row. The most recently decoded row is cached, so 4:2:0 chroma
// rows shared by two luma rows are decoded once.
type plane16 struct {
	p      Plane
	stride int
	buf    []uint16
	cached int
}

func newPlane16(p Plane, name string) (*plane16, error) {
	stride, err := checkPlane(p, 2, name)
	if err != nil {
		return nil, err
	}
	return &plane16{p: p, stride: stride, buf: pool.GetUint16(p.Width), cached: -1}, nil
}

func (r *plane16) Width() int  { return r.p.Width }
func (r *plane16) Height() int { return r.p.Height }

func (r *plane16) Row(y int) []uint16 {
	if y == r.cached {
		return r.buf
	}
	src := r.p.Data[y*r.stride:]
	for x := range r.buf {
		r.buf[x] = binary.NativeEndian.Uint16(src[2*x:])
	}
	r.cached = y
	return r.buf
}

// release returns the scratch row to the pool.
func (r *plane16) release() {
	pool.PutUint16(r.buf)
	r.buf = nil
}
