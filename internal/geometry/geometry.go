package geometry

import "fmt"

// Screen geometry. The working frame is the native display downscaled by
// Scale; only the upper HalfHeight rows are computed, the rest is mirrored.
const (
	NativeWidth  = 800
	NativeHeight = 600
	Scale        = 2

	Width      = NativeWidth / Scale
	Height     = NativeHeight / Scale
	HalfWidth  = Width / 2
	HalfHeight = Height / 2

	BitsPerPixel  = 2
	PixelsPerWord = 8 / BitsPerPixel
	Colors        = 1 << BitsPerPixel

	BufferSize   = Width * HalfHeight
	BufferWords  = BufferSize / PixelsPerWord
	BufferStride = Width / PixelsPerWord
	FrameWords   = BufferStride * Height
)

// Build-time divisibility checks: a non-zero remainder makes the array
// length mismatch and the package fails to compile.
var (
	_ [0]struct{} = [NativeWidth % Scale]struct{}{}
	_ [0]struct{} = [NativeHeight % Scale]struct{}{}
	_ [0]struct{} = [Width % 2]struct{}{}
	_ [0]struct{} = [Height % 2]struct{}{}
	_ [0]struct{} = [Width % PixelsPerWord]struct{}{}
	_ [0]struct{} = [FrameWords - 2*BufferWords]struct{}{}
)

// Geometry describes a working frame. Default matches the constants above;
// other values exist so small frames can be exercised in tests and tools.
type Geometry struct {
	Width  int
	Height int
}

// Default is the compile-time geometry.
var Default = Geometry{Width: Width, Height: Height}

// New derives a working geometry from a native resolution and a downscale
// factor and checks the same divisibility rules the constants obey.
func New(nativeWidth, nativeHeight, scale int) (Geometry, error) {
	if scale <= 0 {
		return Geometry{}, fmt.Errorf("geometry: scale %d must be positive", scale)
	}
	if nativeWidth <= 0 || nativeHeight <= 0 {
		return Geometry{}, fmt.Errorf("geometry: native size %dx%d must be positive", nativeWidth, nativeHeight)
	}
	if nativeWidth%scale != 0 || nativeHeight%scale != 0 {
		return Geometry{}, fmt.Errorf("geometry: native size %dx%d not divisible by scale %d", nativeWidth, nativeHeight, scale)
	}
	g := Geometry{Width: nativeWidth / scale, Height: nativeHeight / scale}
	if g.Width%PixelsPerWord != 0 {
		return Geometry{}, fmt.Errorf("geometry: width %d not divisible by %d", g.Width, PixelsPerWord)
	}
	if g.Height%2 != 0 {
		return Geometry{}, fmt.Errorf("geometry: height %d must be even", g.Height)
	}
	return g, nil
}

func (g Geometry) HalfWidth() int  { return g.Width / 2 }
func (g Geometry) HalfHeight() int { return g.Height / 2 }

// BufferSize is the number of computed pixels (and lookup table entries).
func (g Geometry) BufferSize() int { return g.Width * g.HalfHeight() }

// BufferWords is the number of packed words covering the computed half.
func (g Geometry) BufferWords() int { return g.BufferSize() / PixelsPerWord }

// Stride is the number of packed words per row.
func (g Geometry) Stride() int { return g.Width / PixelsPerWord }

// FrameWords is the number of packed words covering the whole mirrored frame.
func (g Geometry) FrameWords() int { return g.Stride() * g.Height }
