package container

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zstd"

	"github.com/deepteams/avif"
	"github.com/deepteams/avif/yuv"
)

// stream assembles a single-frame Y4M stream.
func stream(header string, planes ...[]byte) []byte {
	b := []byte(header + "\nFRAME\n")
	for _, p := range planes {
		b = append(b, p...)
	}
	return b
}

func le16(vals ...uint16) []byte {
	b := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint16(b[2*i:], v)
	}
	return b
}

func TestDecodeFrame_YUV8(t *testing.T) {
	d := NewDecoder()
	defer d.Close()

	data := stream("YUV4MPEG2 W2 H2 F25:1 C420jpeg XCOLORRANGE=FULL",
		[]byte{1, 2, 3, 4}, []byte{5}, []byte{6})
	f, err := d.DecodeFrame(data)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if f.Range() != yuv.RangeFull {
		t.Errorf("range = %v, want full", f.Range())
	}
	if _, ok := f.MatrixCoefficients(); ok {
		t.Error("matrix reported without XMATRIX")
	}
	rows, err := f.Rows()
	if err != nil {
		t.Fatal(err)
	}
	r, ok := rows.(avif.YUV8)
	if !ok {
		t.Fatalf("rows = %T, want avif.YUV8", rows)
	}
	if r.Sampling != yuv.Cs420 {
		t.Errorf("sampling = %v", r.Sampling)
	}
	if diff := cmp.Diff([]byte{1, 2, 3, 4}, r.Y.Data); diff != "" {
		t.Errorf("Y mismatch (-want +got):\n%s", diff)
	}
	if r.U.Width != 1 || r.U.Height != 1 || r.U.Data[0] != 5 || r.V.Data[0] != 6 {
		t.Errorf("chroma = %+v %+v", r.U, r.V)
	}
}

func TestDecodeFrame_Deep(t *testing.T) {
	d := NewDecoder()
	data := stream("YUV4MPEG2 W2 H1 C422p10 XMATRIX=1",
		le16(1023, 0), le16(512), le16(3))
	f, err := d.DecodeFrame(data)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if mc, ok := f.MatrixCoefficients(); !ok || mc != yuv.MatrixBT709 {
		t.Errorf("matrix = %v, %v", mc, ok)
	}
	rows, _ := f.Rows()
	r, ok := rows.(avif.YUV16)
	if !ok {
		t.Fatalf("rows = %T, want avif.YUV16", rows)
	}
	if r.Depth != 10 {
		t.Errorf("depth = %d, want 10", r.Depth)
	}
	if got := binary.NativeEndian.Uint16(r.Y.Data); got != 1023 {
		t.Errorf("Y[0] = %d, want 1023", got)
	}
	if got := binary.NativeEndian.Uint16(r.U.Data); got != 512 {
		t.Errorf("U[0] = %d, want 512", got)
	}
	if got := binary.NativeEndian.Uint16(r.V.Data); got != 3 {
		t.Errorf("V[0] = %d, want 3", got)
	}
}

func TestDecodeFrame_Mono(t *testing.T) {
	d := NewDecoder()
	f, err := d.DecodeFrame(stream("YUV4MPEG2 W2 H1 Cmono", []byte{7, 8}))
	if err != nil {
		t.Fatal(err)
	}
	rows, _ := f.Rows()
	if r, ok := rows.(avif.Mono8); !ok || r.Y.Data[1] != 8 {
		t.Errorf("rows = %#v", rows)
	}

	f, err = d.DecodeFrame(stream("YUV4MPEG2 W1 H1 Cmono16", le16(0xbeef)))
	if err != nil {
		t.Fatal(err)
	}
	rows, _ = f.Rows()
	r, ok := rows.(avif.Mono16)
	if !ok || r.Depth != 16 || binary.NativeEndian.Uint16(r.Y.Data) != 0xbeef {
		t.Errorf("rows = %#v", rows)
	}
}

func TestDecodeFrame_Zstd(t *testing.T) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	raw := stream("YUV4MPEG2 W2 H1 C444", []byte{9, 10}, []byte{11, 12}, []byte{13, 14})
	packed := enc.EncodeAll(raw, nil)
	enc.Close()

	d := NewDecoder()
	defer d.Close()
	h, err := d.Header(packed)
	if err != nil {
		t.Fatalf("Header: %v", err)
	}
	if h.Width != 2 || h.Sampling != yuv.Cs444 {
		t.Errorf("header = %+v", h)
	}
	f, err := d.DecodeFrame(packed)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	rows, _ := f.Rows()
	r := rows.(avif.YUV8)
	if diff := cmp.Diff([]byte{13, 14}, r.V.Data); diff != "" {
		t.Errorf("V mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeFrame_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"no frame", []byte("YUV4MPEG2 W2 H2\n"), ErrNoFrame},
		{"bad frame marker", []byte("YUV4MPEG2 W1 H1 Cmono\nFRAMX\n\x00"), ErrInvalidHeader},
		{"frame line unterminated", []byte("YUV4MPEG2 W1 H1 Cmono\nFRAME"), ErrTruncated},
		{"short samples", stream("YUV4MPEG2 W2 H2 C444", []byte{1, 2, 3}), ErrTruncated},
		{"bad header", []byte("RIFF"), ErrTruncated},
		{"corrupt zstd", []byte{0x28, 0xb5, 0x2f, 0xfd, 0xff, 0xff, 0xff}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDecoder().DecodeFrame(tt.data)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeFrame_ReusesBuffer(t *testing.T) {
	d := NewDecoder()
	first, err := d.DecodeFrame(stream("YUV4MPEG2 W2 H1 Cmono", []byte{1, 2}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.DecodeFrame(stream("YUV4MPEG2 W2 H1 Cmono", []byte{3, 4})); err != nil {
		t.Fatal(err)
	}
	rows, _ := first.Rows()
	if got := rows.(avif.Mono8).Y.Data[0]; got != 3 {
		t.Errorf("first frame sample = %d, want it overwritten with 3", got)
	}
}

func TestDecode_EndToEnd(t *testing.T) {
	d := NewDecoder()
	c := avif.Container{
		Primary:            stream("YUV4MPEG2 W2 H2 C420jpeg XCOLORRANGE=FULL", []byte{255, 255, 255, 255}, []byte{128}, []byte{128}),
		Alpha:              stream("YUV4MPEG2 W2 H2 Cmono XCOLORRANGE=FULL", []byte{128, 128, 128, 128}),
		PremultipliedAlpha: true,
	}
	img, err := avif.Decode(d, c, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	rgba, ok := img.(*avif.RGBA8)
	if !ok {
		t.Fatalf("got %T, want *avif.RGBA8", img)
	}
	for i := 0; i < len(rgba.Pix); i += 4 {
		if px := rgba.Pix[i : i+4]; px[0] != 255 || px[1] != 255 || px[2] != 255 || px[3] != 128 {
			t.Fatalf("pixel %d = %v, want [255 255 255 128]", i/4, px)
		}
	}
}
