package dsp

// Alpha channel processing: bit-depth widening and inverse premultiplication
// of interleaved RGBA rows.

// Widen8 promotes an 8-bit sample to 16 bits by bit replication, so that
// 0x00 maps to 0x0000 and 0xff maps to 0xffff.
func Widen8(v uint8) uint16 {
	return uint16(v)<<8 | uint16(v)
}

// unpremultiply8 returns round(c*255/a) clamped to 255. a must be non-zero.
func unpremultiply8(c, a uint8) uint8 {
	q := (uint32(c)*255 + uint32(a)>>1) / uint32(a)
	if q > 255 {
		return 255
	}
	return uint8(q)
}

// unpremultiply16 returns round(c*65535/a) clamped to 65535. a must be non-zero.
// The numerator stays below 1<<32 for all inputs.
func unpremultiply16(c, a uint16) uint16 {
	q := (uint32(c)*65535 + uint32(a)>>1) / uint32(a)
	if q > 65535 {
		return 65535
	}
	return uint16(q)
}

// UnpremultiplyRGBA8 divides the color channels of each RGBA pixel in pix by
// its alpha, in place. Pixels with zero alpha are left untouched; fully
// opaque pixels are unchanged by construction and skipped.
func UnpremultiplyRGBA8(pix []uint8) {
	for i := 0; i+3 < len(pix); i += 4 {
		a := pix[i+3]
		if a == 0 || a == 0xff {
			continue
		}
		pix[i+0] = unpremultiply8(pix[i+0], a)
		pix[i+1] = unpremultiply8(pix[i+1], a)
		pix[i+2] = unpremultiply8(pix[i+2], a)
	}
}

// UnpremultiplyRGBA16 is the 16-bit counterpart of UnpremultiplyRGBA8.
func UnpremultiplyRGBA16(pix []uint16) {
	for i := 0; i+3 < len(pix); i += 4 {
		a := pix[i+3]
		if a == 0 || a == 0xffff {
			continue
		}
		pix[i+0] = unpremultiply16(pix[i+0], a)
		pix[i+1] = unpremultiply16(pix[i+1], a)
		pix[i+2] = unpremultiply16(pix[i+2], a)
	}
}
