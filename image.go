package avif

import "fmt"

// PixelFormat identifies the channel layout and sample width of an Image.
type PixelFormat uint8

const (
	FormatRGB8 PixelFormat = iota
	FormatRGB16
	FormatRGBA8
	FormatRGBA16
	FormatGray8
	FormatGray16
)

// Channels returns the number of interleaved samples per pixel.
func (f PixelFormat) Channels() int {
	switch f {
	case FormatRGB8, FormatRGB16:
		return 3
	case FormatRGBA8, FormatRGBA16:
		return 4
	case FormatGray8, FormatGray16:
		return 1
	}
	return 0
}

// BitDepth returns the number of bits per sample: 8 or 16.
func (f PixelFormat) BitDepth() int {
	switch f {
	case FormatRGB8, FormatRGBA8, FormatGray8:
		return 8
	case FormatRGB16, FormatRGBA16, FormatGray16:
		return 16
	}
	return 0
}

// HasAlpha reports whether the format carries an alpha channel.
func (f PixelFormat) HasAlpha() bool {
	return f == FormatRGBA8 || f == FormatRGBA16
}

func (f PixelFormat) String() string {
	switch f {
	case FormatRGB8:
		return "RGB8"
	case FormatRGB16:
		return "RGB16"
	case FormatRGBA8:
		return "RGBA8"
	case FormatRGBA16:
		return "RGBA16"
	case FormatGray8:
		return "Gray8"
	case FormatGray16:
		return "Gray16"
	}
	return fmt.Sprintf("PixelFormat(%d)", uint8(f))
}

// Image is a decoded picture. It is implemented only by *RGB8, *RGB16,
// *RGBA8, *RGBA16, *Gray8 and *Gray16; use a type switch to reach the
// samples.
//
// All variants store Pix contiguously in row-major order with channels
// interleaved, so len(Pix) == Width()*Height()*Format().Channels().
// 16-bit variants hold native uint16 values spanning the full 0-65535 range.
type Image interface {
	Width() int
	Height() int
	Format() PixelFormat
	isImage()
}

type bounds struct {
	width, height int
}

// Width returns the image width in pixels.
func (b bounds) Width() int { return b.width }

// Height returns the image height in pixels.
func (b bounds) Height() int { return b.height }

func (bounds) isImage() {}

// RGB8 is an 8-bit RGB image.
type RGB8 struct {
	bounds
	Pix []uint8
}

// RGB16 is a 16-bit RGB image.
type RGB16 struct {
	bounds
	Pix []uint16
}

// RGBA8 is an 8-bit RGBA image with straight (non-premultiplied) alpha
// once returned by Decode.
type RGBA8 struct {
	bounds
	Pix []uint8
}

// RGBA16 is a 16-bit RGBA image.
type RGBA16 struct {
	bounds
	Pix []uint16
}

// Gray8 is an 8-bit single channel image.
type Gray8 struct {
	bounds
	Pix []uint8
}

// Gray16 is a 16-bit single channel image.
type Gray16 struct {
	bounds
	Pix []uint16
}

func (*RGB8) Format() PixelFormat   { return FormatRGB8 }
func (*RGB16) Format() PixelFormat  { return FormatRGB16 }
func (*RGBA8) Format() PixelFormat  { return FormatRGBA8 }
func (*RGBA16) Format() PixelFormat { return FormatRGBA16 }
func (*Gray8) Format() PixelFormat  { return FormatGray8 }
func (*Gray16) Format() PixelFormat { return FormatGray16 }

// NewRGB8 allocates a width x height RGB8 image.
func NewRGB8(width, height int) *RGB8 {
	return &RGB8{bounds{width, height}, make([]uint8, width*height*3)}
}

// NewRGB16 allocates a width x height RGB16 image.
func NewRGB16(width, height int) *RGB16 {
	return &RGB16{bounds{width, height}, make([]uint16, width*height*3)}
}

// NewRGBA8 allocates a width x height RGBA8 image.
func NewRGBA8(width, height int) *RGBA8 {
	return &RGBA8{bounds{width, height}, make([]uint8, width*height*4)}
}

// NewRGBA16 allocates a width x height RGBA16 image.
func NewRGBA16(width, height int) *RGBA16 {
	return &RGBA16{bounds{width, height}, make([]uint16, width*height*4)}
}

// NewGray8 allocates a width x height Gray8 image.
func NewGray8(width, height int) *Gray8 {
	return &Gray8{bounds{width, height}, make([]uint8, width*height)}
}

// NewGray16 allocates a width x height Gray16 image.
func NewGray16(width, height int) *Gray16 {
	return &Gray16{bounds{width, height}, make([]uint16, width*height)}
}

// Samples returns the number of samples held in the image buffer.
func Samples(img Image) int {
	switch p := img.(type) {
	case *RGB8:
		return len(p.Pix)
	case *RGB16:
		return len(p.Pix)
	case *RGBA8:
		return len(p.Pix)
	case *RGBA16:
		return len(p.Pix)
	case *Gray8:
		return len(p.Pix)
	case *Gray16:
		return len(p.Pix)
	}
	return 0
}

// Validate checks the buffer-length invariant of img.
func Validate(img Image) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	w, h := img.Width(), img.Height()
	if w < 0 || h < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidImage, w, h)
	}
	want := w * h * img.Format().Channels()
	if n := Samples(img); n != want {
		return fmt.Errorf("%w: %v %dx%d holds %d samples, want %d",
			ErrInvalidImage, img.Format(), w, h, n, want)
	}
	return nil
}

// alphaImage is the single-channel result of alpha extraction. It is
// implemented only by *Gray8 and *Gray16.
type alphaImage interface {
	Image
	alphaDepth() int
}

func (*Gray8) alphaDepth() int  { return 8 }
func (*Gray16) alphaDepth() int { return 16 }
