package avif

import (
	"image"
	"image/color"
)

// ToImage copies img into the closest standard library image type so it
// can be handed to encoders such as image/png or golang.org/x/image/tiff:
//
//	RGB8   -> *image.NRGBA (opaque)
//	RGBA8  -> *image.NRGBA
//	RGB16  -> *image.NRGBA64 (opaque)
//	RGBA16 -> *image.NRGBA64
//	Gray8  -> *image.Gray
//	Gray16 -> *image.Gray16
//
// The standard types store 16-bit samples big-endian; that byte order is
// applied here and nowhere else.
func ToImage(img Image) image.Image {
	rect := image.Rect(0, 0, img.Width(), img.Height())
	switch p := img.(type) {
	case *RGB8:
		out := image.NewNRGBA(rect)
		for i, j := 0, 0; i < len(p.Pix); i, j = i+3, j+4 {
			out.Pix[j+0] = p.Pix[i+0]
			out.Pix[j+1] = p.Pix[i+1]
			out.Pix[j+2] = p.Pix[i+2]
			out.Pix[j+3] = 0xff
		}
		return out
	case *RGBA8:
		out := image.NewNRGBA(rect)
		copy(out.Pix, p.Pix)
		return out
	case *RGB16:
		out := image.NewNRGBA64(rect)
		for i, j := 0, 0; i < len(p.Pix); i, j = i+3, j+8 {
			putBE(out.Pix[j:], p.Pix[i+0])
			putBE(out.Pix[j+2:], p.Pix[i+1])
			putBE(out.Pix[j+4:], p.Pix[i+2])
			out.Pix[j+6] = 0xff
			out.Pix[j+7] = 0xff
		}
		return out
	case *RGBA16:
		out := image.NewNRGBA64(rect)
		for i, v := range p.Pix {
			putBE(out.Pix[2*i:], v)
		}
		return out
	case *Gray8:
		out := image.NewGray(rect)
		copy(out.Pix, p.Pix)
		return out
	case *Gray16:
		out := image.NewGray16(rect)
		for i, v := range p.Pix {
			putBE(out.Pix[2*i:], v)
		}
		return out
	}
	return image.NewNRGBA(image.Rectangle{})
}

func putBE(b []uint8, v uint16) {
	b[0] = uint8(v >> 8)
	b[1] = uint8(v)
}

// ColorModel returns the standard color model ToImage produces for f.
func ColorModel(f PixelFormat) color.Model {
	switch f {
	case FormatRGB8, FormatRGBA8:
		return color.NRGBAModel
	case FormatRGB16, FormatRGBA16:
		return color.NRGBA64Model
	case FormatGray8:
		return color.GrayModel
	case FormatGray16:
		return color.Gray16Model
	}
	return color.NRGBAModel
}
