package shadow

import (
	"testing"

	"github.com/dinktools/chess/pkg/raster"
)

// grid builds a buffer from one string per row. Cell legend:
//
//	'.' transparent black (alpha 0)
//	'X' opaque black (alpha 255)
//	'o' half-faded black (alpha 128)
//	'+' almost-opaque black (alpha 254)
func grid(rows ...string) *raster.Buffer {
	h := len(rows)
	w := len(rows[0])
	b := raster.New(w, h)
	for y, row := range rows {
		for x, c := range row {
			switch c {
			case 'X':
				b.SetRGBA(x, y, 0, 0, 0, 255)
			case 'o':
				b.SetRGBA(x, y, 0, 0, 0, 128)
			case '+':
				b.SetRGBA(x, y, 0, 0, 0, 254)
			}
		}
	}
	return b
}

func TestIsShadowPixelFullSurround(t *testing.T) {
	tests := []struct {
		name string
		b    *raster.Buffer
	}{
		{
			name: "transparent diagonals",
			b: grid(
				"...",
				".X.",
				"...",
			),
		},
		{
			// Diagonal content is irrelevant when all four axis
			// neighbors are transparent.
			name: "solid diagonals",
			b: grid(
				"X.X",
				".X.",
				"X.X",
			),
		},
		{
			name: "half-faded neighbors count as transparent",
			b: grid(
				"o.o",
				"oXo",
				"o.o",
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !IsShadowPixel(tt.b, 1, 1) {
				t.Error("IsShadowPixel(1,1) = false, want true")
			}
		})
	}
}

func TestIsShadowPixelInterior(t *testing.T) {
	tests := []struct {
		name string
		b    *raster.Buffer
	}{
		{
			name: "zero transparent neighbors",
			b: grid(
				".X.",
				"XXX",
				".X.",
			),
		},
		{
			name: "one transparent neighbor",
			b: grid(
				".X.",
				"XXX",
				"...",
			),
		},
		{
			name: "two transparent neighbors",
			b: grid(
				"...",
				"XXX",
				".X.",
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if IsShadowPixel(tt.b, 1, 1) {
				t.Error("IsShadowPixel(1,1) = true, want false")
			}
		})
	}
}

func TestIsShadowPixelRequiresFullOpacity(t *testing.T) {
	// Alpha 254 and 128 both fail the strict alpha==255 precondition even
	// when fully surrounded by transparency.
	for _, c := range []struct {
		name string
		b    *raster.Buffer
	}{
		{"alpha 254", grid(
			"...",
			".+.",
			"...",
		)},
		{"alpha 128", grid(
			"...",
			".o.",
			"...",
		)},
	} {
		t.Run(c.name, func(t *testing.T) {
			if IsShadowPixel(c.b, 1, 1) {
				t.Error("IsShadowPixel(1,1) = true, want false")
			}
		})
	}
}

func TestIsShadowPixelCornerDisambiguation(t *testing.T) {
	// With exactly three transparent axis neighbors, a checkerboard member
	// is recognized by the two solid diagonals flanking one of its
	// transparent sides; a sprite-outline pixel with open diagonals is
	// not.
	tests := []struct {
		name string
		b    *raster.Buffer
		x, y int
		want bool
	}{
		{
			// Solid neighbor below; top side flanked by solid corners.
			name: "top rule fires",
			b: grid(
				"X.X",
				".X.",
				".X.",
			),
			x: 1, y: 1, want: true,
		},
		{
			// Solid neighbor to the right; left side flanked by solid
			// corners.
			name: "left rule fires",
			b: grid(
				"X..",
				".XX",
				"X..",
			),
			x: 1, y: 1, want: true,
		},
		{
			// Solid neighbor to the left; right side flanked by solid
			// corners.
			name: "right rule fires",
			b: grid(
				"..X",
				"XX.",
				"..X",
			),
			x: 1, y: 1, want: true,
		},
		{
			// Solid neighbor above; bottom side flanked by solid corners.
			name: "bottom rule fires",
			b: grid(
				".X.",
				".X.",
				"X.X",
			),
			x: 1, y: 1, want: true,
		},
		{
			// Sprite bump: one solid neighbor below, all diagonals open.
			name: "no rule matches with open corners",
			b: grid(
				"...",
				".X.",
				".X.",
			),
			x: 1, y: 1, want: false,
		},
		{
			// Corners must be exactly alpha 255; half-faded diagonals do
			// not count as solid.
			name: "faded corners are not solid",
			b: grid(
				"o.o",
				".X.",
				".X.",
			),
			x: 1, y: 1, want: false,
		},
		{
			// One solid and one open corner on every transparent side.
			name: "mixed corners fail each rule",
			b: grid(
				"X..",
				".X.",
				".XX",
			),
			x: 1, y: 1, want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsShadowPixel(tt.b, tt.x, tt.y)
			if got != tt.want {
				t.Errorf("IsShadowPixel(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestIsShadowPixelOffCanvas(t *testing.T) {
	t.Run("single pixel image", func(t *testing.T) {
		// All four neighbors are off-canvas, which counts as transparent.
		b := grid("X")
		if !IsShadowPixel(b, 0, 0) {
			t.Error("IsShadowPixel(0,0) = false, want true")
		}
	})

	t.Run("off-canvas corner is not solid", func(t *testing.T) {
		// Pixel on the left edge: the top rule needs a solid top-left
		// corner, which is off-canvas here, so only the right rule can
		// fire.
		b := grid(
			".X...",
			"X....",
			"XX...",
			".....",
		)
		// (0,1): transparent top, left (off-canvas), right; solid bottom.
		// Top rule: top-left off-canvas, fails. Right rule: top-right
		// (1,0) solid, bottom-right (1,2) solid, fires.
		if !IsShadowPixel(b, 0, 1) {
			t.Error("IsShadowPixel(0,1) = false, want true")
		}
	})

	t.Run("border pixel without solid corners", func(t *testing.T) {
		b := grid(
			"X....",
			"X....",
			"X....",
		)
		// (0,1): top and bottom neighbors solid, count is 2.
		if IsShadowPixel(b, 0, 1) {
			t.Error("IsShadowPixel(0,1) = true, want false")
		}
	})
}

func TestConvertIsolatedPixel(t *testing.T) {
	b := raster.New(3, 3)
	b.SetRGBA(1, 1, 200, 100, 50, 255)

	n := Convert(b)
	if n != 1 {
		t.Fatalf("Convert() = %d converted, want 1", n)
	}

	// Shadow pixel: RGB halved, alpha at the shadow constant.
	if r, g, bl, a := b.RGBAAt(1, 1); r != 100 || g != 50 || bl != 25 || a != ShadowAlpha {
		t.Errorf("center = (%d,%d,%d,%d), want (100,50,25,128)", r, g, bl, a)
	}

	// Axis neighbors: black baseline plus a quarter of the darkened color.
	for _, p := range [][2]int{{1, 0}, {0, 1}, {1, 2}, {2, 1}} {
		r, g, bl, a := b.RGBAAt(p[0], p[1])
		if r != 25 || g != 12 || bl != 6 || a != ShadowAlpha {
			t.Errorf("neighbor (%d,%d) = (%d,%d,%d,%d), want (25,12,6,128)",
				p[0], p[1], r, g, bl, a)
		}
	}

	// Diagonals stay untouched.
	for _, p := range [][2]int{{0, 0}, {2, 0}, {0, 2}, {2, 2}} {
		if _, _, _, a := b.RGBAAt(p[0], p[1]); a != 0 {
			t.Errorf("diagonal (%d,%d) alpha = %d, want 0", p[0], p[1], a)
		}
	}
}

func TestConvertSinglePixelImage(t *testing.T) {
	b := raster.New(1, 1)
	b.SetRGBA(0, 0, 90, 60, 30, 255)

	if n := Convert(b); n != 1 {
		t.Fatalf("Convert() = %d converted, want 1", n)
	}
	if r, g, bl, a := b.RGBAAt(0, 0); r != 45 || g != 30 || bl != 15 || a != ShadowAlpha {
		t.Errorf("pixel = (%d,%d,%d,%d), want (45,30,15,128)", r, g, bl, a)
	}
}

func TestConvertNoopOnShadowFreeImages(t *testing.T) {
	tests := []struct {
		name string
		b    *raster.Buffer
	}{
		{
			name: "fully transparent",
			b:    raster.New(4, 4),
		},
		{
			name: "fully opaque",
			b: grid(
				"XXX",
				"XXX",
				"XXX",
			),
		},
		{
			// Solid 3x3 sprite inside a transparent ring: every sprite
			// pixel has at most two transparent axis neighbors.
			name: "solid block with transparent border",
			b: grid(
				".....",
				".XXX.",
				".XXX.",
				".XXX.",
				".....",
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := tt.b.Clone()
			if n := Convert(tt.b); n != 0 {
				t.Fatalf("Convert() = %d converted, want 0", n)
			}
			if !tt.b.Equal(want) {
				t.Error("Convert() mutated a shadow-free image")
			}
		})
	}
}

func TestConvertScanOrderDependence(t *testing.T) {
	// Two isolated opaque pixels that share transparent neighbors. The
	// scan reaches (1,0) first, converts it, and fades (0,0) and (1,1) to
	// alpha 128. When (0,1) is visited, its top and right neighbors are no
	// longer transparent-like, so it keeps alpha 255. The mutation order
	// is part of the reference behavior.
	b := grid(
		".X.",
		"X..",
		"...",
	)

	if n := Convert(b); n != 1 {
		t.Fatalf("Convert() = %d converted, want 1", n)
	}
	if a := b.AlphaAt(1, 0); a != ShadowAlpha {
		t.Errorf("(1,0) alpha = %d, want %d", a, ShadowAlpha)
	}
	if a := b.AlphaAt(0, 1); a != 255 {
		t.Errorf("(0,1) alpha = %d, want 255 (locked by earlier fades)", a)
	}
	// (0,0) and (1,1) were faded exactly once and are now locked.
	for _, p := range [][2]int{{0, 0}, {1, 1}} {
		if a := b.AlphaAt(p[0], p[1]); a != ShadowAlpha {
			t.Errorf("(%d,%d) alpha = %d, want %d", p[0], p[1], a, ShadowAlpha)
		}
	}
}

func TestConvertAlphaInvariant(t *testing.T) {
	// After conversion every pixel is untouched (alpha 0 or 255) or was
	// written by the shadow/fade logic (alpha exactly 128).
	b := raster.New(16, 16)
	for y := 2; y <= 12; y++ {
		for x := 2; x <= 12; x++ {
			if (x+y)%2 == 0 {
				b.SetRGBA(x, y, 0, 0, 0, 255)
			}
		}
	}

	if n := Convert(b); n == 0 {
		t.Fatal("Convert() converted nothing on a checkerboard")
	}

	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			a := b.AlphaAt(x, y)
			if a != 0 && a != ShadowAlpha && a != 255 {
				t.Fatalf("(%d,%d) alpha = %d, want 0, 128 or 255", x, y, a)
			}
		}
	}
}

func TestConvertFadedPixelsKeepShadowAlpha(t *testing.T) {
	// Every pixel reachable by a fade step ends at exactly ShadowAlpha
	// with RGB within range, regardless of how many shadow pixels border
	// it: the first fade raises alpha to 128, which locks later fades out.
	b := raster.New(8, 8)
	for y := 1; y <= 6; y++ {
		for x := 1; x <= 6; x++ {
			if (x+y)%2 == 0 {
				b.SetRGBA(x, y, 255, 255, 255, 255)
			}
		}
	}

	Convert(b)

	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			r, g, bl, a := b.RGBAAt(x, y)
			if a != 0 && a != ShadowAlpha && a != 255 {
				t.Fatalf("(%d,%d) alpha = %d, want 0, 128 or 255", x, y, a)
			}
			// A white source only ever produces gray values, both for
			// darkened shadow pixels (127) and fade targets (31).
			if a == ShadowAlpha && (r != g || g != bl) {
				t.Fatalf("(%d,%d) = (%d,%d,%d), want equal channels", x, y, r, g, bl)
			}
			if a == ShadowAlpha && r != 127 && r != 31 {
				t.Fatalf("(%d,%d) gray = %d, want 127 (shadow) or 31 (fade)", x, y, r)
			}
		}
	}
}
