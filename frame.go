package avif

import "github.com/deepteams/avif/yuv"

// Frame is one decoded picture as produced by a FrameDecoder. Its row data
// may be borrowed from the decoder: it is only read until the conversion
// call that received the Frame returns.
type Frame interface {
	// Range reports whether samples use the full or the studio range.
	Range() yuv.Range

	// MatrixCoefficients returns the declared matrix. ok is false when the
	// sequence header leaves it unspecified.
	MatrixCoefficients() (mc yuv.MatrixCoefficients, ok bool)

	// Rows returns the planes of the frame: one of YUV8, YUV16, Mono8 or
	// Mono16.
	Rows() (Rows, error)
}

// FrameDecoder decodes one compressed image item into a Frame. A Frame
// returned by DecodeFrame may be invalidated by the next call.
type FrameDecoder interface {
	DecodeFrame(item []byte) (Frame, error)
}

// Container is what the container parser knows about an image: the
// compressed primary item, the optional auxiliary alpha item and whether
// the color samples were premultiplied by alpha.
type Container struct {
	Primary            []byte
	Alpha              []byte // nil when the image has no alpha item
	PremultipliedAlpha bool
}

// Plane is a rectangular grid of samples. 8-bit planes hold one byte per
// sample; deeper planes hold two bytes per sample in native byte order.
type Plane struct {
	Data   []byte
	Width  int // in samples
	Height int
	Stride int // bytes from one row to the next; 0 means tightly packed
}

// Rows is the closed set of plane layouts a Frame can carry: YUV8, YUV16,
// Mono8 and Mono16.
type Rows interface {
	isRows()
}

// YUV8 holds three 8-bit planes.
type YUV8 struct {
	Y, U, V  Plane
	Sampling yuv.ChromaSampling
}

// YUV16 holds three planes of Depth bits (9-16) stored as 16-bit samples.
type YUV16 struct {
	Y, U, V  Plane
	Sampling yuv.ChromaSampling
	Depth    int
}

// Mono8 holds a single 8-bit luma plane.
type Mono8 struct {
	Y Plane
}

// Mono16 holds a single luma plane of Depth bits (9-16).
type Mono16 struct {
	Y     Plane
	Depth int
}

func (YUV8) isRows()   {}
func (YUV16) isRows()  {}
func (Mono8) isRows()  {}
func (Mono16) isRows() {}
