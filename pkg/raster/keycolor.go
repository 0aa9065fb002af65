package raster

// RGB is an 8-bit color triple used as a transparency key.
type RGB struct {
	R, G, B uint8
}

// Well-known transparency keys for color-keyed sprite sheets.
var (
	White = RGB{0xFF, 0xFF, 0xFF}
	Black = RGB{0x00, 0x00, 0x00}
)

// FromHex unpacks a 0xRRGGBB value into an RGB triple.
func FromHex(hex uint32) RGB {
	return RGB{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
	}
}

// Hex packs the triple back into a 0xRRGGBB value.
func (c RGB) Hex() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// KeyToAlpha sets alpha to 0 for every pixel whose R, G and B channels each
// fall within tolerance of key. With tolerance 0 only exact matches change.
// Non-matching pixels are left untouched, including their alpha.
//
// This is the pre-pass applied to sprites that mark their background with a
// solid key color (typically pure white or pure black) instead of an alpha
// channel; the shadow converter requires actual transparency to classify
// against.
func KeyToAlpha(b *Buffer, key RGB, tolerance int) {
	if tolerance < 0 {
		tolerance = 0
	}
	for i := 0; i < len(b.Pix); i += 4 {
		if diff(b.Pix[i], key.R) <= tolerance &&
			diff(b.Pix[i+1], key.G) <= tolerance &&
			diff(b.Pix[i+2], key.B) <= tolerance {
			b.Pix[i+3] = 0
		}
	}
}

// diff returns the absolute difference of two channel values.
func diff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}
