package container

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/deepteams/avif"
	"github.com/deepteams/avif/yuv"
)

// Decoder decodes the first frame of Y4M streams. Streams may be
// zstd-compressed; compression is detected from the zstd frame magic.
//
// Frames share one sample buffer owned by the Decoder, so a Frame is only
// valid until the next DecodeFrame call. A Decoder is not safe for
// concurrent use.
type Decoder struct {
	zdec     *zstd.Decoder
	inflated []byte
	samples  []byte
}

// NewDecoder returns a ready-to-use Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Close releases the zstd decoder, if one was created.
func (d *Decoder) Close() {
	if d.zdec != nil {
		d.zdec.Close()
		d.zdec = nil
	}
}

// Header returns the stream header of item without decoding samples.
func (d *Decoder) Header(item []byte) (Header, error) {
	data, err := d.inflate(item)
	if err != nil {
		return Header{}, err
	}
	h, _, err := ParseHeader(data)
	return h, err
}

// DecodeFrame parses the stream header of item and returns its first frame.
func (d *Decoder) DecodeFrame(item []byte) (avif.Frame, error) {
	data, err := d.inflate(item)
	if err != nil {
		return nil, err
	}
	h, n, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	data = data[n:]
	if len(data) == 0 {
		return nil, ErrNoFrame
	}
	line, n, err := readLine(data)
	if err != nil {
		return nil, err
	}
	if tok, _, _ := strings.Cut(line, " "); tok != FrameMagic {
		return nil, fmt.Errorf("%w: expected %s, got %q", ErrInvalidHeader, FrameMagic, tok)
	}
	data = data[n:]

	size := h.FrameSize()
	if len(data) < size {
		return nil, fmt.Errorf("%w: frame holds %d bytes, need %d", ErrTruncated, len(data), size)
	}
	if cap(d.samples) < size {
		d.samples = make([]byte, size)
	}
	d.samples = d.samples[:size]
	if h.BytesPerSample() == 1 {
		copy(d.samples, data[:size])
	} else {
		// Y4M stores deep samples little-endian; planes are native-endian.
		for i := 0; i < size; i += 2 {
			binary.NativeEndian.PutUint16(d.samples[i:], binary.LittleEndian.Uint16(data[i:]))
		}
	}
	return &frame{hdr: h, samples: d.samples}, nil
}

// inflate returns item, decompressed first when it is a zstd stream.
func (d *Decoder) inflate(item []byte) ([]byte, error) {
	if !bytes.HasPrefix(item, zstdMagic) {
		return item, nil
	}
	if d.zdec == nil {
		zdec, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(true),
			zstd.WithDecoderMaxMemory(MaxInflatedSize),
		)
		if err != nil {
			return nil, fmt.Errorf("y4m: zstd decoder: %w", err)
		}
		d.zdec = zdec
	}
	out, err := d.zdec.DecodeAll(item, d.inflated[:0])
	if err != nil {
		return nil, fmt.Errorf("y4m: zstd decode: %w", err)
	}
	d.inflated = out
	return out, nil
}

// frame is a decoded picture whose planes alias the decoder's buffer.
type frame struct {
	hdr     Header
	samples []byte
}

func (f *frame) Range() yuv.Range { return f.hdr.Range }

func (f *frame) MatrixCoefficients() (yuv.MatrixCoefficients, bool) {
	return f.hdr.Matrix, f.hdr.HasMatrix
}

func (f *frame) Rows() (avif.Rows, error) {
	h := f.hdr
	bps := h.BytesPerSample()
	ySize := h.Width * h.Height * bps
	y := avif.Plane{Data: f.samples[:ySize], Width: h.Width, Height: h.Height}

	if h.Sampling == yuv.Monochrome {
		if bps == 1 {
			return avif.Mono8{Y: y}, nil
		}
		return avif.Mono16{Y: y, Depth: h.Depth}, nil
	}

	cw, ch := h.Sampling.ChromaSize(h.Width, h.Height)
	cSize := cw * ch * bps
	u := avif.Plane{Data: f.samples[ySize : ySize+cSize], Width: cw, Height: ch}
	v := avif.Plane{Data: f.samples[ySize+cSize : ySize+2*cSize], Width: cw, Height: ch}
	if bps == 1 {
		return avif.YUV8{Y: y, U: u, V: v, Sampling: h.Sampling}, nil
	}
	return avif.YUV16{Y: y, U: u, V: v, Sampling: h.Sampling, Depth: h.Depth}, nil
}
