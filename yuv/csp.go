// Package yuv converts Y'CbCr samples to RGB for the color descriptions
// carried by AV1 sequence headers (ITU-T H.273 code points).
//
// Two converters are provided: Converter8 for 8-bit samples and
// Converter16 for samples of any depth between 9 and 16 bits. Both use
// fixed-point arithmetic and saturate instead of wrapping.
package yuv

import "fmt"

// Range specifies the range of YUV values.
type Range uint8

const (
	RangeLimited Range = iota // Y in [16, 235], UV in [16, 240] for 8-bit
	RangeFull                 // YUV values between [0, 255] for 8-bit
)

// String returns the range name.
func (r Range) String() string {
	switch r {
	case RangeLimited:
		return "limited"
	case RangeFull:
		return "full"
	default:
		return fmt.Sprintf("Range(%d)", uint8(r))
	}
}

// MatrixCoefficients identifies the YUV<->RGB transform by its H.273 code point.
type MatrixCoefficients uint8

const (
	MatrixIdentity         MatrixCoefficients = 0 // GBR, no transform
	MatrixBT709            MatrixCoefficients = 1
	MatrixUnspecified      MatrixCoefficients = 2
	MatrixReserved         MatrixCoefficients = 3
	MatrixFCC              MatrixCoefficients = 4
	MatrixBT470BG          MatrixCoefficients = 5
	MatrixBT601            MatrixCoefficients = 6 // SMPTE 170M
	MatrixSMPTE240         MatrixCoefficients = 7
	MatrixYCgCo            MatrixCoefficients = 8
	MatrixBT2020NCL        MatrixCoefficients = 9
	MatrixBT2020CL         MatrixCoefficients = 10
	MatrixSMPTE2085        MatrixCoefficients = 11
	MatrixChromaDerivedNCL MatrixCoefficients = 12
	MatrixChromaDerivedCL  MatrixCoefficients = 13
	MatrixICtCp            MatrixCoefficients = 14
)

var matrixNames = map[MatrixCoefficients]string{
	MatrixIdentity:         "identity",
	MatrixBT709:            "bt709",
	MatrixUnspecified:      "unspecified",
	MatrixReserved:         "reserved",
	MatrixFCC:              "fcc",
	MatrixBT470BG:          "bt470bg",
	MatrixBT601:            "bt601",
	MatrixSMPTE240:         "smpte240",
	MatrixYCgCo:            "ycgco",
	MatrixBT2020NCL:        "bt2020ncl",
	MatrixBT2020CL:         "bt2020cl",
	MatrixSMPTE2085:        "smpte2085",
	MatrixChromaDerivedNCL: "chroma-derived-ncl",
	MatrixChromaDerivedCL:  "chroma-derived-cl",
	MatrixICtCp:            "ictcp",
}

// String returns the lower-case name used by ParseMatrix.
func (m MatrixCoefficients) String() string {
	if s, ok := matrixNames[m]; ok {
		return s
	}
	return fmt.Sprintf("MatrixCoefficients(%d)", uint8(m))
}

// ParseMatrix looks up a matrix by the name String returns.
func ParseMatrix(name string) (MatrixCoefficients, error) {
	for m, s := range matrixNames {
		if s == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown matrix %q", ErrUnsupportedColorMetadata, name)
}

// lumaWeights returns the Kr and Kb coefficients of a luma/color-difference
// matrix. ok is false for matrices that are not of that form.
func (m MatrixCoefficients) lumaWeights() (kr, kb float64, ok bool) {
	switch m {
	case MatrixBT709:
		return 0.2126, 0.0722, true
	case MatrixFCC:
		return 0.30, 0.11, true
	case MatrixBT470BG, MatrixBT601:
		return 0.299, 0.114, true
	case MatrixSMPTE240:
		return 0.212, 0.087, true
	case MatrixBT2020NCL:
		return 0.2627, 0.0593, true
	}
	return 0, 0, false
}

// Supported reports whether the converters can evaluate m.
func (m MatrixCoefficients) Supported() bool {
	if m == MatrixIdentity || m == MatrixYCgCo {
		return true
	}
	_, _, ok := m.lumaWeights()
	return ok
}

// ChromaSampling describes the chroma plane geometry relative to luma.
type ChromaSampling uint8

const (
	Cs420 ChromaSampling = iota // half width, half height
	Cs422                       // half width
	Cs444                       // same size as luma
	Monochrome                  // no chroma planes
)

// String returns the conventional name of the sampling.
func (cs ChromaSampling) String() string {
	switch cs {
	case Cs420:
		return "4:2:0"
	case Cs422:
		return "4:2:2"
	case Cs444:
		return "4:4:4"
	case Monochrome:
		return "mono"
	default:
		return fmt.Sprintf("ChromaSampling(%d)", uint8(cs))
	}
}

// ChromaSize returns the dimensions of a chroma plane for a luma plane of
// width x height. Monochrome has no chroma plane and returns 0, 0.
func (cs ChromaSampling) ChromaSize(width, height int) (int, int) {
	switch cs {
	case Cs420:
		return (width + 1) >> 1, (height + 1) >> 1
	case Cs422:
		return (width + 1) >> 1, height
	case Cs444:
		return width, height
	default:
		return 0, 0
	}
}
