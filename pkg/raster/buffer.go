// Package raster provides the in-memory RGBA pixel buffer that the
// conversion pipeline operates on, plus the key-color transparency pass
// applied to color-keyed sprites before shadow detection.
//
// A Buffer is a width×height grid of 8-bit RGBA pixels, row-major with the
// origin at the top left. It is backed by the same pixel layout as
// *image.NRGBA (non-premultiplied), so buffers convert to and from the
// standard image types without copying.
package raster

import "image"

// Buffer is a mutable RGBA pixel grid.
//
// Pix holds 4 bytes per pixel in R, G, B, A order; the pixel at (x, y)
// starts at Pix[(y*Width+x)*4]. The buffer is owned exclusively by the
// conversion call for its duration and is mutated in place.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// New creates an all-zero (fully transparent black) buffer.
func New(width, height int) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// FromNRGBA wraps an *image.NRGBA as a Buffer.
// The pixel data is shared, not copied; the image must have a minimal
// stride and a zero origin, which is what the decoders in pkg/imgio
// produce. Images that don't satisfy this are re-laid-out into a copy.
func FromNRGBA(img *image.NRGBA) *Buffer {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if img.Stride == w*4 && b.Min.X == 0 && b.Min.Y == 0 {
		return &Buffer{Width: w, Height: h, Pix: img.Pix}
	}
	out := New(w, h)
	for y := 0; y < h; y++ {
		row := img.Pix[(y+b.Min.Y-img.Rect.Min.Y)*img.Stride+(b.Min.X-img.Rect.Min.X)*4:]
		copy(out.Pix[y*w*4:(y+1)*w*4], row[:w*4])
	}
	return out
}

// NRGBA returns the buffer as an *image.NRGBA sharing the same pixel data.
func (b *Buffer) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// In reports whether (x, y) is on-canvas.
func (b *Buffer) In(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// Offset returns the index of the pixel (x, y) in Pix.
// The coordinate must be on-canvas.
func (b *Buffer) Offset(x, y int) int {
	return (y*b.Width + x) * 4
}

// AlphaAt returns the alpha channel of the pixel at (x, y).
// The coordinate must be on-canvas.
func (b *Buffer) AlphaAt(x, y int) uint8 {
	return b.Pix[b.Offset(x, y)+3]
}

// RGBAAt returns the four channels of the pixel at (x, y).
// The coordinate must be on-canvas.
func (b *Buffer) RGBAAt(x, y int) (r, g, bl, a uint8) {
	i := b.Offset(x, y)
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// SetRGBA overwrites the pixel at (x, y).
// The coordinate must be on-canvas.
func (b *Buffer) SetRGBA(x, y int, r, g, bl, a uint8) {
	i := b.Offset(x, y)
	b.Pix[i] = r
	b.Pix[i+1] = g
	b.Pix[i+2] = bl
	b.Pix[i+3] = a
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	out := New(b.Width, b.Height)
	copy(out.Pix, b.Pix)
	return out
}

// Equal reports whether two buffers have identical dimensions and pixels.
func (b *Buffer) Equal(other *Buffer) bool {
	if b.Width != other.Width || b.Height != other.Height {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}
