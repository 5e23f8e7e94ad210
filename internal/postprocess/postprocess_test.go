package postprocess

import (
	"image/color"
	"testing"

	"tunnel-renderer/internal/geometry"
	"tunnel-renderer/internal/raster"
)

func smallGeometry(t *testing.T) geometry.Geometry {
	t.Helper()
	g, err := geometry.New(16, 8, 2)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestParsePalette(t *testing.T) {
	p, err := ParsePalette([]string{"#000000", "ff0000", " #00ff00 ", "#0000FF"})
	if err != nil {
		t.Fatalf("ParsePalette: %v", err)
	}
	want := Palette{
		{A: 0xff},
		{R: 0xff, A: 0xff},
		{G: 0xff, A: 0xff},
		{B: 0xff, A: 0xff},
	}
	if p != want {
		t.Fatalf("got %v, want %v", p, want)
	}

	bad := [][]string{
		{"#000000"},
		{"#000000", "#000000", "#000000", "#00000"},
		{"#000000", "#000000", "#000000", "#gg0000"},
	}
	for _, in := range bad {
		if _, err := ParsePalette(in); err == nil {
			t.Errorf("ParsePalette(%q) succeeded, want error", in)
		}
	}
}

func TestExpand(t *testing.T) {
	g := smallGeometry(t)
	frame := raster.NewFrame(g)
	frame[0] = raster.Pack(0, 1, 2, 3)
	frame[len(frame)-1] = raster.Pack(3, 3, 3, 1)

	img := Expand(g, frame, DefaultPalette)
	if img.Bounds().Dx() != g.Width || img.Bounds().Dy() != g.Height {
		t.Fatalf("bounds %v", img.Bounds())
	}
	for x := 0; x < 4; x++ {
		if got := img.ColorIndexAt(x, 0); got != uint8(x) {
			t.Errorf("index at (%d,0) = %d, want %d", x, got, x)
		}
	}
	if got := img.ColorIndexAt(g.Width-1, g.Height-1); got != 1 {
		t.Errorf("last pixel index = %d, want 1", got)
	}
	if got := img.At(3, 0); got != color.Color(DefaultPalette[3]) {
		t.Errorf("colour at (3,0) = %v, want %v", got, DefaultPalette[3])
	}
}

func TestExpandRGBA(t *testing.T) {
	g := smallGeometry(t)
	frame := raster.NewFrame(g)
	frame[1] = raster.Pack(2, 0, 0, 0) // pixel (4, 0)

	dst := make([]byte, 4*g.Width*g.Height)
	ExpandRGBA(dst, g, frame, DefaultPalette)
	c := DefaultPalette[2]
	o := 4 * 4
	if dst[o] != c.R || dst[o+1] != c.G || dst[o+2] != c.B || dst[o+3] != c.A {
		t.Fatalf("pixel (4,0) = % x, want %v", dst[o:o+4], c)
	}
	c = DefaultPalette[0]
	if dst[0] != c.R || dst[3] != 0xff {
		t.Fatalf("pixel (0,0) = % x, want %v", dst[0:4], c)
	}
}

func TestExpandIntoDoesNotAllocate(t *testing.T) {
	g := geometry.Default
	frame := raster.NewFrame(g)
	img := Expand(g, frame, DefaultPalette)
	allocs := testing.AllocsPerRun(5, func() {
		ExpandInto(img, g, frame)
	})
	if allocs != 0 {
		t.Fatalf("ExpandInto allocated %.0f times", allocs)
	}
}

func TestUpscale(t *testing.T) {
	g := smallGeometry(t)
	frame := raster.NewFrame(g)
	frame[0] = raster.Pack(3, 0, 0, 0)
	img := Expand(g, frame, DefaultPalette)

	if Upscale(img, 1) != img {
		t.Fatal("factor 1 should return the input")
	}
	up := Upscale(img, geometry.Scale)
	if up.Bounds().Dx() != g.Width*geometry.Scale || up.Bounds().Dy() != g.Height*geometry.Scale {
		t.Fatalf("bounds %v", up.Bounds())
	}
	for _, p := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		if got := up.ColorIndexAt(p[0], p[1]); got != 3 {
			t.Errorf("index at %v = %d, want 3", p, got)
		}
	}
	if got := up.ColorIndexAt(2, 0); got != 0 {
		t.Errorf("index at (2,0) = %d, want 0", got)
	}
}
