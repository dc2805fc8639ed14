// Package avif turns decoded AV1 image frames into flat RGB, RGBA or gray
// pixel buffers.
//
// A frame decoder supplies planar, possibly chroma-subsampled YUV rows of
// 8 to 16 bits together with their color description. This package
// handles everything after that point:
//
//   - Chroma upsampling (4:2:0, 4:2:2, 4:4:4) and YUV to RGB conversion
//     for the H.273 matrix coefficients listed in package yuv
//   - Gray output for monochrome frames
//   - Alpha extraction from an auxiliary frame
//   - Compositing color and alpha of differing bit depths
//   - Reversal of premultiplied alpha
//
// Basic usage with a FrameDecoder implementation:
//
//	img, err := avif.Decode(dec, avif.Container{Primary: color, Alpha: alpha}, nil)
//
// The result is one of *RGB8, *RGB16, *RGBA8, *RGBA16, *Gray8 or *Gray16.
// ToImage adapts it to the standard library's image types for encoding.
package avif
