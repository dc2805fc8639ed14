package avif

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/deepteams/avif/yuv"
)

func TestConvertFrame_White420(t *testing.T) {
	img, err := ConvertFrame(whiteFrame(), nil)
	if err != nil {
		t.Fatal(err)
	}
	rgb, ok := img.(*RGB8)
	if !ok {
		t.Fatalf("got %T, want *RGB8", img)
	}
	if rgb.Width() != 2 || rgb.Height() != 2 {
		t.Errorf("dimensions = %dx%d, want 2x2", rgb.Width(), rgb.Height())
	}
	want := []uint8{255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255}
	if diff := cmp.Diff(want, rgb.Pix); diff != "" {
		t.Errorf("Pix mismatch (-want +got):\n%s", diff)
	}
	if err := Validate(img); err != nil {
		t.Error(err)
	}
}

func TestConvertFrame_DefaultMatrix(t *testing.T) {
	frame := func(mc yuv.MatrixCoefficients, has bool) *testFrame {
		return &testFrame{
			rng:   yuv.RangeFull,
			mc:    mc,
			hasMC: has,
			rows: YUV8{
				Y:        testPlane8(1, 1, 100),
				U:        testPlane8(1, 1, 50),
				V:        testPlane8(1, 1, 200),
				Sampling: yuv.Cs444,
			},
		}
	}
	bt709, err := yuv.NewConverter8(yuv.RangeFull, yuv.MatrixBT709)
	if err != nil {
		t.Fatal(err)
	}
	r, g, b := bt709.ToRGB(100, 50, 200)
	want709 := []uint8{r, g, b}

	tests := []struct {
		name  string
		frame *testFrame
		opts  *Options
		want  []uint8
	}{
		{"absent uses BT.709", frame(0, false), nil, want709},
		{"unspecified uses BT.709", frame(yuv.MatrixUnspecified, true), nil, want709},
		{"declared wins", frame(yuv.MatrixIdentity, true), nil, []uint8{200, 100, 50}},
		{"override default", frame(0, false), &Options{ColorMatrix: Matrix(yuv.MatrixIdentity)}, []uint8{200, 100, 50}},
		{"partial options keep BT.709", frame(0, false), &Options{Threads: 1}, want709},
		{"zero options keep BT.709", frame(0, false), &Options{}, want709},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := ConvertFrame(tt.frame, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, img.(*RGB8).Pix); diff != "" {
				t.Errorf("Pix mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConvertFrame_Errors(t *testing.T) {
	errRows := errors.New("rows unavailable")
	tests := []struct {
		name  string
		frame *testFrame
		want  error
	}{
		{
			"monochrome sampling on YUV planes",
			&testFrame{rows: YUV8{Y: testPlane8(2, 2, 0), U: testPlane8(1, 1, 0), V: testPlane8(1, 1, 0), Sampling: yuv.Monochrome}},
			ErrInvalidChromaFormat,
		},
		{
			"unsupported matrix",
			&testFrame{mc: yuv.MatrixICtCp, hasMC: true, rows: YUV8{Y: testPlane8(1, 1, 0), U: testPlane8(1, 1, 0), V: testPlane8(1, 1, 0), Sampling: yuv.Cs444}},
			ErrUnsupportedColorMetadata,
		},
		{
			"unsupported depth",
			&testFrame{rows: YUV16{Y: testPlane16(1, 1, 0), U: testPlane16(1, 1, 0), V: testPlane16(1, 1, 0), Sampling: yuv.Cs444, Depth: 20}},
			ErrUnsupportedColorMetadata,
		},
		{
			"truncated plane",
			&testFrame{rows: YUV8{Y: Plane{Data: make([]byte, 3), Width: 2, Height: 2}, U: testPlane8(1, 1, 0), V: testPlane8(1, 1, 0), Sampling: yuv.Cs420}},
			ErrInvalidPlane,
		},
		{
			"stride smaller than width",
			&testFrame{rows: Mono8{Y: Plane{Data: make([]byte, 8), Width: 4, Height: 2, Stride: 3}}},
			ErrInvalidPlane,
		},
		{
			"chroma too small",
			&testFrame{rows: YUV8{Y: testPlane8(4, 4, 0), U: testPlane8(1, 1, 0), V: testPlane8(2, 2, 0), Sampling: yuv.Cs420}},
			ErrInvalidPlane,
		},
		{
			"rows error",
			&testFrame{rowsErr: errRows},
			errRows,
		},
		{
			"unknown rows",
			&testFrame{rows: bogusRows{}},
			ErrInvalidRows,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := ConvertFrame(tt.frame, nil)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if img != nil {
				t.Errorf("got image %T alongside error", img)
			}
		})
	}
}

func TestConvertFrame_ErrorPrefix(t *testing.T) {
	f := &testFrame{rows: YUV8{Y: testPlane8(2, 2, 0), U: testPlane8(1, 1, 0), V: testPlane8(1, 1, 0), Sampling: yuv.Monochrome}}
	_, err := ConvertFrame(f, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if n := strings.Count(err.Error(), "avif:"); n != 1 {
		t.Errorf("err = %q, want a single avif: prefix", err)
	}
}

type bogusRows struct{}

func (bogusRows) isRows() {}

func TestConvertFrame_Stride(t *testing.T) {
	// 2x2 luma with 2 bytes of padding per row.
	y := Plane{Data: []byte{10, 20, 0xee, 0xee, 30, 40, 0xee, 0xee}, Width: 2, Height: 2, Stride: 4}
	img, err := ConvertFrame(&testFrame{rng: yuv.RangeFull, rows: Mono8{Y: y}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]uint8{10, 20, 30, 40}, img.(*Gray8).Pix); diff != "" {
		t.Errorf("Pix mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertFrame_YUV16(t *testing.T) {
	const depth = 10
	f := &testFrame{
		rng: yuv.RangeFull,
		rows: YUV16{
			Y:        testPlane16(4, 2, 1023, 0, 1023, 0, 0, 1023, 0, 1023),
			U:        testPlane16(2, 2, 512),
			V:        testPlane16(2, 2, 512),
			Sampling: yuv.Cs422,
			Depth:    depth,
		},
	}
	img, err := ConvertFrame(f, nil)
	if err != nil {
		t.Fatal(err)
	}
	rgb, ok := img.(*RGB16)
	if !ok {
		t.Fatalf("got %T, want *RGB16", img)
	}
	luma := []uint16{65535, 0, 65535, 0, 0, 65535, 0, 65535}
	for i, l := range luma {
		px := rgb.Pix[3*i : 3*i+3]
		if px[0] != l || px[1] != l || px[2] != l {
			t.Errorf("pixel %d = %v, want %d", i, px, l)
		}
	}
}

func TestConvertFrame_Monochrome(t *testing.T) {
	t.Run("8-bit limited", func(t *testing.T) {
		f := &testFrame{rng: yuv.RangeLimited, rows: Mono8{Y: testPlane8(3, 1, 16, 235, 255)}}
		img, err := ConvertFrame(f, nil)
		if err != nil {
			t.Fatal(err)
		}
		g, ok := img.(*Gray8)
		if !ok {
			t.Fatalf("got %T, want *Gray8", img)
		}
		if diff := cmp.Diff([]uint8{0, 255, 255}, g.Pix); diff != "" {
			t.Errorf("Pix mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("16-bit full", func(t *testing.T) {
		img, err := ConvertFrame(monoFrame16(2, 1, 12, 0, 4095), nil)
		if err != nil {
			t.Fatal(err)
		}
		g, ok := img.(*Gray16)
		if !ok {
			t.Fatalf("got %T, want *Gray16", img)
		}
		if diff := cmp.Diff([]uint16{0, 65535}, g.Pix); diff != "" {
			t.Errorf("Pix mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestConvertFrame_BlockChroma420(t *testing.T) {
	// Identity keeps chroma visible in R (V) and B (U).
	f := &testFrame{
		rng:   yuv.RangeFull,
		mc:    yuv.MatrixIdentity,
		hasMC: true,
		rows: YUV8{
			Y:        testPlane8(4, 2, 1, 2, 3, 4, 5, 6, 7, 8),
			U:        testPlane8(2, 1, 10, 20),
			V:        testPlane8(2, 1, 30, 40),
			Sampling: yuv.Cs420,
		},
	}
	img, err := ConvertFrame(f, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint8{
		30, 1, 10, 30, 2, 10, 40, 3, 20, 40, 4, 20,
		30, 5, 10, 30, 6, 10, 40, 7, 20, 40, 8, 20,
	}
	if diff := cmp.Diff(want, img.(*RGB8).Pix); diff != "" {
		t.Errorf("Pix mismatch (-want +got):\n%s", diff)
	}
}
