// Package container reads YUV4MPEG2 (Y4M) streams and decodes their first
// frame into planes the avif conversion pipeline consumes.
package container

import "github.com/deepteams/avif/yuv"

// Stream framing.
const (
	StreamMagic = "YUV4MPEG2"
	FrameMagic  = "FRAME"

	// MaxHeaderSize bounds the stream and frame header lines.
	MaxHeaderSize = 4096

	// MaxDimension bounds the picture width and height.
	MaxDimension = 1 << 16

	// MaxInflatedSize bounds the size of a zstd-compressed stream once
	// decompressed.
	MaxInflatedSize = 1 << 31
)

// zstdMagic starts every zstd frame (0xFD2FB528 little-endian).
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// colorspace describes one C token value.
type colorspace struct {
	sampling yuv.ChromaSampling
	depth    int
}

// colorspaces maps C token values to sampling and bit depth. The 4:2:0
// siting variants are equivalent here since chroma is replicated, not
// interpolated.
var colorspaces = map[string]colorspace{
	"420jpeg":  {yuv.Cs420, 8},
	"420paldv": {yuv.Cs420, 8},
	"420mpeg2": {yuv.Cs420, 8},
	"420":      {yuv.Cs420, 8},
	"422":      {yuv.Cs422, 8},
	"444":      {yuv.Cs444, 8},
	"mono":     {yuv.Monochrome, 8},
	"420p9":    {yuv.Cs420, 9},
	"422p9":    {yuv.Cs422, 9},
	"444p9":    {yuv.Cs444, 9},
	"mono9":    {yuv.Monochrome, 9},
	"420p10":   {yuv.Cs420, 10},
	"422p10":   {yuv.Cs422, 10},
	"444p10":   {yuv.Cs444, 10},
	"mono10":   {yuv.Monochrome, 10},
	"420p12":   {yuv.Cs420, 12},
	"422p12":   {yuv.Cs422, 12},
	"444p12":   {yuv.Cs444, 12},
	"mono12":   {yuv.Monochrome, 12},
	"420p14":   {yuv.Cs420, 14},
	"422p14":   {yuv.Cs422, 14},
	"444p14":   {yuv.Cs444, 14},
	"mono14":   {yuv.Monochrome, 14},
	"420p16":   {yuv.Cs420, 16},
	"422p16":   {yuv.Cs422, 16},
	"444p16":   {yuv.Cs444, 16},
	"mono16":   {yuv.Monochrome, 16},
}

// DefaultColorspace is assumed when the stream header has no C token.
const DefaultColorspace = "420jpeg"
