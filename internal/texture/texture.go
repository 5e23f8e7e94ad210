// Package texture provides the indexed-colour texture sources sampled by the
// tunnel renderer.
package texture

import (
	"fmt"

	"tunnel-renderer/internal/geometry"
)

// MaxSize is the largest supported texture edge. Texture coordinates are
// 8-bit and wrap at 256, so every power-of-two size up to MaxSize tiles
// without a seam.
const MaxSize = 256

// Texture is a power-of-two sized grid of colour indices.
type Texture struct {
	Width  int
	Height int
	Pix    []uint8 // row-major colour indices, len = Width*Height

	wmask uint8
	hmask uint8
}

// New validates the dimensions and indices and returns a texture over pix.
func New(width, height int, pix []uint8) (*Texture, error) {
	if !validSize(width) || !validSize(height) {
		return nil, fmt.Errorf("texture: size %dx%d must be powers of two in [1, %d]", width, height, MaxSize)
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("texture: %d indices for %dx%d", len(pix), width, height)
	}
	for i, c := range pix {
		if c >= geometry.Colors {
			return nil, fmt.Errorf("texture: index %d at texel %d out of range", c, i)
		}
	}
	return &Texture{
		Width:  width,
		Height: height,
		Pix:    pix,
		wmask:  uint8(width - 1),
		hmask:  uint8(height - 1),
	}, nil
}

// Sample returns the colour index at (u mod Width, v mod Height).
func (t *Texture) Sample(u, v uint8) uint8 {
	return t.Pix[int(v&t.hmask)*t.Width+int(u&t.wmask)]
}

// At returns the colour index at texel (x, y), wrapping out-of-range values.
func (t *Texture) At(x, y int) uint8 {
	return t.Sample(uint8(x), uint8(y))
}

func validSize(n int) bool {
	return n >= 1 && n <= MaxSize && n&(n-1) == 0
}
