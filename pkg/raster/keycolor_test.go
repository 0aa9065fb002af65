package raster

import "testing"

func TestFromHex(t *testing.T) {
	tests := []struct {
		hex  uint32
		want RGB
	}{
		{0xFFFFFF, White},
		{0x000000, Black},
		{0x12AB34, RGB{0x12, 0xAB, 0x34}},
	}
	for _, tt := range tests {
		if got := FromHex(tt.hex); got != tt.want {
			t.Errorf("FromHex(%#x) = %+v, want %+v", tt.hex, got, tt.want)
		}
		if got := tt.want.Hex(); got != tt.hex {
			t.Errorf("%+v.Hex() = %#x, want %#x", tt.want, got, tt.hex)
		}
	}
}

func TestKeyToAlphaExactMatch(t *testing.T) {
	b := New(3, 1)
	b.SetRGBA(0, 0, 255, 255, 255, 255) // exact white
	b.SetRGBA(1, 0, 255, 255, 254, 255) // off by one
	b.SetRGBA(2, 0, 200, 50, 50, 255)   // sprite color

	KeyToAlpha(b, White, 0)

	if a := b.AlphaAt(0, 0); a != 0 {
		t.Errorf("exact match alpha = %d, want 0", a)
	}
	if a := b.AlphaAt(1, 0); a != 255 {
		t.Errorf("near match alpha = %d, want 255 (tolerance 0 is exact)", a)
	}
	if a := b.AlphaAt(2, 0); a != 255 {
		t.Errorf("sprite pixel alpha = %d, want 255", a)
	}
}

func TestKeyToAlphaTolerance(t *testing.T) {
	tests := []struct {
		name      string
		pixel     RGB
		key       RGB
		tolerance int
		wantClear bool
	}{
		{"all channels within", RGB{250, 252, 255}, White, 5, true},
		{"one channel outside", RGB{249, 255, 255}, White, 5, false},
		{"boundary is inclusive", RGB{250, 250, 250}, White, 5, true},
		{"black key", RGB{3, 2, 1}, Black, 3, true},
		{"black key outside", RGB{4, 0, 0}, Black, 3, false},
		{"negative tolerance treated as exact", RGB{255, 255, 255}, White, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(1, 1)
			b.SetRGBA(0, 0, tt.pixel.R, tt.pixel.G, tt.pixel.B, 255)

			KeyToAlpha(b, tt.key, tt.tolerance)

			cleared := b.AlphaAt(0, 0) == 0
			if cleared != tt.wantClear {
				t.Errorf("cleared = %v, want %v", cleared, tt.wantClear)
			}
		})
	}
}

func TestKeyToAlphaPreservesColorChannels(t *testing.T) {
	// Only alpha changes; RGB stays so a later inspection can still see
	// what the key color was.
	b := New(1, 1)
	b.SetRGBA(0, 0, 255, 255, 255, 255)

	KeyToAlpha(b, White, 0)

	r, g, bl, a := b.RGBAAt(0, 0)
	if r != 255 || g != 255 || bl != 255 {
		t.Errorf("RGB = (%d,%d,%d), want (255,255,255)", r, g, bl)
	}
	if a != 0 {
		t.Errorf("alpha = %d, want 0", a)
	}
}

func TestKeyToAlphaIgnoresExistingAlpha(t *testing.T) {
	// Matching is on RGB only: an already semi-transparent white pixel
	// still gets keyed out.
	b := New(1, 1)
	b.SetRGBA(0, 0, 255, 255, 255, 77)

	KeyToAlpha(b, White, 0)

	if a := b.AlphaAt(0, 0); a != 0 {
		t.Errorf("alpha = %d, want 0", a)
	}
}
