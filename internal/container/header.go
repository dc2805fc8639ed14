package container

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/deepteams/avif/yuv"
)

// Common errors.
var (
	ErrInvalidHeader         = errors.New("y4m: invalid stream header")
	ErrUnsupportedColorspace = errors.New("y4m: unsupported colorspace")
	ErrTruncated             = errors.New("y4m: truncated data")
	ErrNoFrame               = errors.New("y4m: stream has no frame")
)

// Ratio is a rational header value such as a frame rate or pixel aspect.
// The zero value means unknown.
type Ratio struct {
	Num, Den int
}

func (r Ratio) String() string {
	if r.Den == 0 {
		return "unknown"
	}
	return fmt.Sprintf("%d:%d", r.Num, r.Den)
}

// Header holds the parsed stream header.
type Header struct {
	Width      int
	Height     int
	Colorspace string // C token value, DefaultColorspace when absent
	Sampling   yuv.ChromaSampling
	Depth      int // bits per sample, 8 to 16
	Range      yuv.Range
	Matrix     yuv.MatrixCoefficients
	HasMatrix  bool // an XMATRIX token was present
	FrameRate  Ratio
	Aspect     Ratio
	Interlace  byte // I token value, 0 when absent
}

// BytesPerSample returns 1 for 8-bit streams and 2 otherwise.
func (h Header) BytesPerSample() int {
	if h.Depth > 8 {
		return 2
	}
	return 1
}

// FrameSize returns the number of sample bytes in one frame, excluding
// the FRAME line.
func (h Header) FrameSize() int {
	cw, ch := h.Sampling.ChromaSize(h.Width, h.Height)
	return (h.Width*h.Height + 2*cw*ch) * h.BytesPerSample()
}

// ParseHeader validates and parses the stream header line at the start of
// data. Returns the header and the number of bytes consumed, including the
// terminating newline.
func ParseHeader(data []byte) (Header, int, error) {
	line, n, err := readLine(data)
	if err != nil {
		return Header{}, 0, err
	}
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] != StreamMagic {
		return Header{}, 0, fmt.Errorf("%w: missing %s signature", ErrInvalidHeader, StreamMagic)
	}

	h := Header{Colorspace: DefaultColorspace, Range: yuv.RangeLimited}
	for _, tok := range fields[1:] {
		if err := h.parseToken(tok); err != nil {
			return Header{}, 0, err
		}
	}
	if h.Width <= 0 || h.Height <= 0 {
		return Header{}, 0, fmt.Errorf("%w: missing dimensions", ErrInvalidHeader)
	}
	cs, ok := colorspaces[h.Colorspace]
	if !ok {
		return Header{}, 0, fmt.Errorf("%w: %q", ErrUnsupportedColorspace, h.Colorspace)
	}
	h.Sampling, h.Depth = cs.sampling, cs.depth
	return h, n, nil
}

func (h *Header) parseToken(tok string) error {
	val := tok[1:]
	switch tok[0] {
	case 'W':
		return parseDimension(val, &h.Width)
	case 'H':
		return parseDimension(val, &h.Height)
	case 'C':
		h.Colorspace = val
	case 'F':
		return parseRatio(val, &h.FrameRate)
	case 'A':
		return parseRatio(val, &h.Aspect)
	case 'I':
		if len(val) != 1 {
			return fmt.Errorf("%w: interlace %q", ErrInvalidHeader, val)
		}
		h.Interlace = val[0]
	case 'X':
		return h.parseExtension(val)
	default:
		return fmt.Errorf("%w: unknown token %q", ErrInvalidHeader, tok)
	}
	return nil
}

// parseExtension handles X tokens. Unknown extensions are ignored.
func (h *Header) parseExtension(val string) error {
	key, v, ok := strings.Cut(val, "=")
	if !ok {
		return nil
	}
	switch key {
	case "COLORRANGE":
		switch strings.ToUpper(v) {
		case "FULL":
			h.Range = yuv.RangeFull
		case "LIMITED":
			h.Range = yuv.RangeLimited
		default:
			return fmt.Errorf("%w: color range %q", ErrInvalidHeader, v)
		}
	case "MATRIX":
		code, err := strconv.ParseUint(v, 10, 8)
		if err != nil {
			return fmt.Errorf("%w: matrix %q", ErrInvalidHeader, v)
		}
		h.Matrix = yuv.MatrixCoefficients(code)
		h.HasMatrix = true
	}
	return nil
}

func parseDimension(s string, dst *int) error {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 || v > MaxDimension {
		return fmt.Errorf("%w: dimension %q", ErrInvalidHeader, s)
	}
	*dst = v
	return nil
}

func parseRatio(s string, dst *Ratio) error {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return fmt.Errorf("%w: ratio %q", ErrInvalidHeader, s)
	}
	num, err1 := strconv.Atoi(a)
	den, err2 := strconv.Atoi(b)
	if err1 != nil || err2 != nil || num < 0 || den < 0 {
		return fmt.Errorf("%w: ratio %q", ErrInvalidHeader, s)
	}
	*dst = Ratio{Num: num, Den: den}
	return nil
}

// readLine returns the line at the start of data without its newline and
// the number of bytes consumed including the newline.
func readLine(data []byte) (string, int, error) {
	limit := min(len(data), MaxHeaderSize)
	i := bytes.IndexByte(data[:limit], '\n')
	if i < 0 {
		if len(data) >= MaxHeaderSize {
			return "", 0, fmt.Errorf("%w: header line exceeds %d bytes", ErrInvalidHeader, MaxHeaderSize)
		}
		return "", 0, ErrTruncated
	}
	return string(data[:i]), i + 1, nil
}
