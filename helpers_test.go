package avif

import (
	"encoding/binary"
	"fmt"

	"github.com/deepteams/avif/yuv"
)

// testFrame is a Frame backed by in-memory planes.
type testFrame struct {
	rng     yuv.Range
	mc      yuv.MatrixCoefficients
	hasMC   bool
	rows    Rows
	rowsErr error
}

func (f *testFrame) Range() yuv.Range { return f.rng }

func (f *testFrame) MatrixCoefficients() (yuv.MatrixCoefficients, bool) {
	return f.mc, f.hasMC
}

func (f *testFrame) Rows() (Rows, error) {
	if f.rowsErr != nil {
		return nil, f.rowsErr
	}
	return f.rows, nil
}

// mapDecoder returns a prepared frame per item and records the call order.
type mapDecoder struct {
	frames map[string]Frame
	err    map[string]error
	calls  []string
}

func (d *mapDecoder) DecodeFrame(item []byte) (Frame, error) {
	key := string(item)
	d.calls = append(d.calls, key)
	if err := d.err[key]; err != nil {
		return nil, err
	}
	f, ok := d.frames[key]
	if !ok {
		return nil, fmt.Errorf("no frame for item %q", key)
	}
	return f, nil
}

func testPlane8(w, h int, vals ...uint8) Plane {
	data := make([]byte, w*h)
	fill8(data, vals)
	return Plane{Data: data, Width: w, Height: h}
}

func fill8(data []byte, vals []uint8) {
	for i := range data {
		if len(vals) == 1 {
			data[i] = vals[0]
		} else {
			data[i] = vals[i]
		}
	}
}

func testPlane16(w, h int, vals ...uint16) Plane {
	data := make([]byte, 2*w*h)
	for i := 0; i < w*h; i++ {
		v := vals[0]
		if len(vals) > 1 {
			v = vals[i]
		}
		binary.NativeEndian.PutUint16(data[2*i:], v)
	}
	return Plane{Data: data, Width: w, Height: h}
}

// whiteFrame is a 2x2 4:2:0 8-bit full range frame with Y=255 and
// neutral chroma.
func whiteFrame() *testFrame {
	return &testFrame{
		rng:   yuv.RangeFull,
		mc:    yuv.MatrixBT709,
		hasMC: true,
		rows: YUV8{
			Y:        testPlane8(2, 2, 255, 255, 255, 255),
			U:        testPlane8(1, 1, 128),
			V:        testPlane8(1, 1, 128),
			Sampling: yuv.Cs420,
		},
	}
}

func monoFrame8(w, h int, vals ...uint8) *testFrame {
	return &testFrame{rng: yuv.RangeFull, rows: Mono8{Y: testPlane8(w, h, vals...)}}
}

func monoFrame16(w, h, depth int, vals ...uint16) *testFrame {
	return &testFrame{rng: yuv.RangeFull, rows: Mono16{Y: testPlane16(w, h, vals...), Depth: depth}}
}
