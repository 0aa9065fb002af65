// Package shadow implements the checkerboard-to-alpha conversion at the
// heart of chess.
//
// Legacy sprite engines without alpha blending approximated shadows with a
// checkerboard dither: alternating fully-opaque and fully-transparent
// pixels. This package detects which opaque pixels belong to such a
// pattern, rewrites them as uniform semi-transparent darkened shadow, and
// fades a fraction of their color into the adjacent transparent pixels so
// the shadow edge is soft instead of jagged.
//
// The conversion is a single row-major scan that classifies and mutates
// pixel by pixel. Later pixels observe earlier mutations; this scan-order
// dependence is part of the algorithm's defined behavior and must not be
// "fixed" with a separate read buffer.
package shadow

import "github.com/dinktools/chess/pkg/raster"

const (
	// AlphaThreshold separates transparent-like pixels (alpha below) from
	// opaque-like pixels in neighbor tests.
	AlphaThreshold = 128

	// ShadowAlpha is the alpha value written to every converted shadow
	// pixel and every faded neighbor. It equals AlphaThreshold, which is
	// what locks faded pixels against being faded twice.
	ShadowAlpha = 128
)

// transparentLike reports whether the pixel at (x, y) counts as transparent
// for the 4-neighbor test. Off-canvas coordinates count as transparent so
// shadow pixels on the image border are still recognized.
func transparentLike(b *raster.Buffer, x, y int) bool {
	if !b.In(x, y) {
		return true
	}
	return b.AlphaAt(x, y) < AlphaThreshold
}

// cornerSolid reports whether the diagonal pixel at (x, y) is solid in the
// strict sense used by corner disambiguation: on-canvas and alpha exactly
// 255. Off-canvas corners are not solid.
func cornerSolid(b *raster.Buffer, x, y int) bool {
	if !b.In(x, y) {
		return false
	}
	return b.AlphaAt(x, y) == 255
}

// IsShadowPixel reports whether the fully-opaque pixel at (x, y) belongs to
// a checkerboard shadow pattern.
//
// A pixel qualifies when it is fully opaque (alpha 255) and surrounded by
// transparent-like axis neighbors: all four, or exactly three with corner
// disambiguation. With exactly three, the pixel could either be a shadow
// pixel whose fourth side touches sprite content, or a sprite outline
// pixel that merely abuts background. In a checkerboard the diagonal
// neighbors of a shadow pixel share its parity and are therefore solid, so
// the ambiguity is resolved by requiring both corners flanking a
// transparent side to be solid. The sides are tested in fixed order: top,
// left, right, bottom; the first match wins.
//
// The classification reads the current buffer state, which during a
// conversion scan may already contain mutations from earlier pixels.
func IsShadowPixel(b *raster.Buffer, x, y int) bool {
	if b.AlphaAt(x, y) != 255 {
		return false
	}

	top := transparentLike(b, x, y-1)
	left := transparentLike(b, x-1, y)
	bottom := transparentLike(b, x, y+1)
	right := transparentLike(b, x+1, y)

	count := 0
	for _, t := range [4]bool{top, left, bottom, right} {
		if t {
			count++
		}
	}

	switch {
	case count == 4:
		return true
	case count < 3:
		return false
	}

	topLeft := cornerSolid(b, x-1, y-1)
	topRight := cornerSolid(b, x+1, y-1)
	bottomLeft := cornerSolid(b, x-1, y+1)
	bottomRight := cornerSolid(b, x+1, y+1)

	switch {
	case top && topLeft && topRight:
		return true
	case left && topLeft && bottomLeft:
		return true
	case right && topRight && bottomRight:
		return true
	case bottom && bottomLeft && bottomRight:
		return true
	}
	return false
}

// fade blends a quarter of the source shadow color into the transparent
// pixel at (x, y) and raises its alpha to ShadowAlpha.
//
// No-op off-canvas or when the target is already opaque-like (alpha at or
// above AlphaThreshold); since faded pixels end at exactly ShadowAlpha,
// each target is faded at most once. A never-touched pixel (alpha 0) has
// its RGB zeroed first so the blend starts from a deterministic black
// baseline regardless of whatever color the transparent pixel carried.
func fade(b *raster.Buffer, x, y int, sr, sg, sb uint8) {
	if !b.In(x, y) {
		return
	}
	i := b.Offset(x, y)
	if b.Pix[i+3] >= AlphaThreshold {
		return
	}
	if b.Pix[i+3] == 0 {
		b.Pix[i] = 0
		b.Pix[i+1] = 0
		b.Pix[i+2] = 0
	}
	b.Pix[i] = addClamp(b.Pix[i], sr/4)
	b.Pix[i+1] = addClamp(b.Pix[i+1], sg/4)
	b.Pix[i+2] = addClamp(b.Pix[i+2], sb/4)
	b.Pix[i+3] = ShadowAlpha
}

// addClamp adds two channel values, saturating at 255.
func addClamp(a, b uint8) uint8 {
	s := int(a) + int(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}

// Convert rewrites every checkerboard shadow pixel in b and fades its axis
// neighbors, in a single row-major scan. It returns the number of shadow
// pixels converted.
//
// For each classified pixel the scan halves the RGB channels (integer
// division), sets alpha to ShadowAlpha, and fades the four axis neighbors
// with the darkened color. Darkening and fading happen immediately, so
// pixels later in the scan see the mutations of earlier ones; a transparent
// pixel faded to ShadowAlpha no longer counts as transparent-like for
// subsequent classifications. Reproducing that ordering exactly is required
// for output fidelity with the reference converter.
func Convert(b *raster.Buffer) int {
	converted := 0
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if !IsShadowPixel(b, x, y) {
				continue
			}
			i := b.Offset(x, y)
			b.Pix[i] /= 2
			b.Pix[i+1] /= 2
			b.Pix[i+2] /= 2
			b.Pix[i+3] = ShadowAlpha

			sr, sg, sb := b.Pix[i], b.Pix[i+1], b.Pix[i+2]
			fade(b, x, y-1, sr, sg, sb)
			fade(b, x-1, y, sr, sg, sb)
			fade(b, x, y+1, sr, sg, sb)
			fade(b, x+1, y, sr, sg, sb)

			converted++
		}
	}
	return converted
}
