package avif

import (
	"log/slog"
	"runtime"

	"github.com/deepteams/avif/yuv"
)

// MaxThreads caps the default thread count.
const MaxThreads = 32

// Matrix coefficients assumed when a frame does not declare any.
// DefaultAlphaMatrix also applies to monochrome color frames.
var (
	DefaultColorMatrix = yuv.MatrixBT709
	DefaultAlphaMatrix = yuv.MatrixIdentity
)

// Options controls conversion. A nil *Options is equivalent to
// DefaultOptions().
type Options struct {
	// ColorMatrix is used for color frames that leave the matrix unspecified.
	// nil selects DefaultColorMatrix.
	ColorMatrix *yuv.MatrixCoefficients

	// AlphaMatrix is used for alpha and monochrome frames that leave the
	// matrix unspecified. nil selects DefaultAlphaMatrix.
	AlphaMatrix *yuv.MatrixCoefficients

	// Threads bounds the number of goroutines used for row-parallel stages.
	// Values <= 0 select min(runtime.NumCPU(), MaxThreads).
	Threads int

	// Logger overrides the package logger for calls using these options.
	Logger *slog.Logger
}

// DefaultOptions returns options carrying the package defaults.
func DefaultOptions() *Options {
	return &Options{
		ColorMatrix: Matrix(DefaultColorMatrix),
		AlphaMatrix: Matrix(DefaultAlphaMatrix),
		Threads:     defaultThreads(),
	}
}

// Matrix returns a pointer to mc, for use in Options.
func Matrix(mc yuv.MatrixCoefficients) *yuv.MatrixCoefficients {
	return &mc
}

func (o *Options) colorMatrix() yuv.MatrixCoefficients {
	if o.ColorMatrix != nil {
		return *o.ColorMatrix
	}
	return DefaultColorMatrix
}

func (o *Options) alphaMatrix() yuv.MatrixCoefficients {
	if o.AlphaMatrix != nil {
		return *o.AlphaMatrix
	}
	return DefaultAlphaMatrix
}

func defaultThreads() int {
	return min(runtime.NumCPU(), MaxThreads)
}

func (o *Options) threads() int {
	if o.Threads <= 0 {
		return defaultThreads()
	}
	return o.Threads
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return Logger()
}

func optionsOrDefault(o *Options) *Options {
	if o == nil {
		return DefaultOptions()
	}
	return o
}

// matrixOf returns the frame's declared matrix, or def when it declares
// none. H.273 "unspecified" counts as none.
func matrixOf(f Frame, def yuv.MatrixCoefficients) yuv.MatrixCoefficients {
	mc, ok := f.MatrixCoefficients()
	if !ok || mc == yuv.MatrixUnspecified {
		return def
	}
	return mc
}
