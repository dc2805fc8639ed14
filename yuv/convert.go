package yuv

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnsupportedColorMetadata is returned when a range, matrix or bit depth
// combination cannot be evaluated.
var ErrUnsupportedColorMetadata = errors.New("yuv: unsupported color metadata")

// Fixed-point precision shared by both converters.
const (
	yuvFix  = 16
	yuvHalf = 1 << (yuvFix - 1)
)

// kind selects the shape of the inverse transform.
type kind uint8

const (
	kindLumaChroma kind = iota
	kindIdentity
	kindYCgCo
)

// transform holds the inverse matrix in floating point, scaled so that
// (sample - offset) * coefficient yields an output code value.
type transform struct {
	kind       kind
	yOff, cOff float64
	yMul       float64 // luma and GBR component scale
	cMul       float64 // chroma scale
	rCr        float64
	gCb, gCr   float64
	bCb        float64
}

// newTransform derives the inverse transform for samples of the given depth
// producing codes in [0, outMax].
func newTransform(r Range, mc MatrixCoefficients, depth int, outMax float64) (transform, error) {
	if depth < 8 || depth > 16 {
		return transform{}, fmt.Errorf("%w: bit depth %d", ErrUnsupportedColorMetadata, depth)
	}
	shift := depth - 8
	var t transform
	switch r {
	case RangeFull:
		inMax := float64(int(1)<<uint(depth) - 1)
		t.yMul = outMax / inMax
		t.cMul = outMax / inMax
		t.cOff = float64(int(1) << uint(depth-1))
	case RangeLimited:
		t.yMul = outMax / float64(int(219) << shift)
		t.cMul = outMax / float64(int(224) << shift)
		t.yOff = float64(int(16) << shift)
		t.cOff = float64(int(128) << shift)
	default:
		return transform{}, fmt.Errorf("%w: range %v", ErrUnsupportedColorMetadata, r)
	}

	switch mc {
	case MatrixIdentity:
		// GBR: every component is coded like luma.
		t.kind = kindIdentity
		return t, nil
	case MatrixYCgCo:
		t.kind = kindYCgCo
		return t, nil
	}
	kr, kb, ok := mc.lumaWeights()
	if !ok {
		return transform{}, fmt.Errorf("%w: matrix coefficients %v", ErrUnsupportedColorMetadata, mc)
	}
	kg := 1 - kr - kb
	t.kind = kindLumaChroma
	t.rCr = 2 * (1 - kr) * t.cMul
	t.bCb = 2 * (1 - kb) * t.cMul
	t.gCb = 2 * kb * (1 - kb) / kg * t.cMul
	t.gCr = 2 * kr * (1 - kr) / kg * t.cMul
	return t, nil
}

func toFixed(f float64) int64 {
	return int64(math.Floor(f*(1<<yuvFix) + 0.5))
}

// Converter8 converts 8-bit YUV samples to 8-bit RGB.
type Converter8 struct {
	kind               kind
	yOff, cOff         int32
	yMul, cMul         int32
	rCr, gCb, gCr, bCb int32
}

// NewConverter8 returns a converter for 8-bit samples.
func NewConverter8(r Range, mc MatrixCoefficients) (*Converter8, error) {
	t, err := newTransform(r, mc, 8, 255)
	if err != nil {
		return nil, err
	}
	return &Converter8{
		kind: t.kind,
		yOff: int32(t.yOff),
		cOff: int32(t.cOff),
		yMul: int32(toFixed(t.yMul)),
		cMul: int32(toFixed(t.cMul)),
		rCr:  int32(toFixed(t.rCr)),
		gCb:  int32(toFixed(t.gCb)),
		gCr:  int32(toFixed(t.gCr)),
		bCb:  int32(toFixed(t.bCb)),
	}, nil
}

// Neutral returns the chroma value that carries no color.
func (c *Converter8) Neutral() uint8 { return 128 }

func clip8(v int32) uint8 {
	v = (v + yuvHalf) >> yuvFix
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// ToRGB converts one YUV sample to RGB.
func (c *Converter8) ToRGB(y, u, v uint8) (r, g, b uint8) {
	switch c.kind {
	case kindIdentity:
		return clip8((int32(v) - c.yOff) * c.yMul),
			clip8((int32(y) - c.yOff) * c.yMul),
			clip8((int32(u) - c.yOff) * c.yMul)
	case kindYCgCo:
		yy := (int32(y) - c.yOff) * c.yMul
		cg := (int32(u) - c.cOff) * c.cMul
		co := (int32(v) - c.cOff) * c.cMul
		t := yy - cg
		return clip8(t + co), clip8(yy + cg), clip8(t - co)
	}
	yy := (int32(y) - c.yOff) * c.yMul
	cb := int32(u) - c.cOff
	cr := int32(v) - c.cOff
	return clip8(yy + c.rCr*cr),
		clip8(yy - c.gCb*cb - c.gCr*cr),
		clip8(yy + c.bCb*cb)
}

// Converter16 converts YUV samples of 9 to 16 bits to full-range 16-bit RGB.
// Output always spans [0, 65535] regardless of the input depth.
type Converter16 struct {
	kind               kind
	depth              int
	yOff, cOff         int64
	yMul, cMul         int64
	rCr, gCb, gCr, bCb int64
}

// NewConverter16 returns a converter for samples of the given depth (9-16).
func NewConverter16(r Range, mc MatrixCoefficients, depth int) (*Converter16, error) {
	if depth < 9 || depth > 16 {
		return nil, fmt.Errorf("%w: bit depth %d for 16-bit conversion", ErrUnsupportedColorMetadata, depth)
	}
	t, err := newTransform(r, mc, depth, 65535)
	if err != nil {
		return nil, err
	}
	return &Converter16{
		kind:  t.kind,
		depth: depth,
		yOff:  int64(t.yOff),
		cOff:  int64(t.cOff),
		yMul:  toFixed(t.yMul),
		cMul:  toFixed(t.cMul),
		rCr:   toFixed(t.rCr),
		gCb:   toFixed(t.gCb),
		gCr:   toFixed(t.gCr),
		bCb:   toFixed(t.bCb),
	}, nil
}

// Depth returns the input bit depth.
func (c *Converter16) Depth() int { return c.depth }

// Neutral returns the chroma value that carries no color at the input depth.
func (c *Converter16) Neutral() uint16 { return uint16(1) << uint(c.depth-1) }

func clip16(v int64) uint16 {
	v = (v + yuvHalf) >> yuvFix
	if v < 0 {
		return 0
	}
	if v > 65535 {
		return 65535
	}
	return uint16(v)
}

// ToRGB converts one YUV sample to RGB.
func (c *Converter16) ToRGB(y, u, v uint16) (r, g, b uint16) {
	switch c.kind {
	case kindIdentity:
		return clip16((int64(v) - c.yOff) * c.yMul),
			clip16((int64(y) - c.yOff) * c.yMul),
			clip16((int64(u) - c.yOff) * c.yMul)
	case kindYCgCo:
		yy := (int64(y) - c.yOff) * c.yMul
		cg := (int64(u) - c.cOff) * c.cMul
		co := (int64(v) - c.cOff) * c.cMul
		t := yy - cg
		return clip16(t + co), clip16(yy + cg), clip16(t - co)
	}
	yy := (int64(y) - c.yOff) * c.yMul
	cb := int64(u) - c.cOff
	cr := int64(v) - c.cOff
	return clip16(yy + c.rCr*cr),
		clip16(yy - c.gCb*cb - c.gCr*cr),
		clip16(yy + c.bCb*cb)
}
