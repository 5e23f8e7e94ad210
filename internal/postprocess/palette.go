package postprocess

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"tunnel-renderer/internal/geometry"
)

// Palette maps the four colour indices to display colours.
type Palette [geometry.Colors]color.NRGBA

// DefaultPalette is a dark-to-light green ramp.
var DefaultPalette = Palette{
	{R: 0x0f, G: 0x38, B: 0x0f, A: 0xff},
	{R: 0x30, G: 0x62, B: 0x30, A: 0xff},
	{R: 0x8b, G: 0xac, B: 0x0f, A: 0xff},
	{R: 0x9b, G: 0xbc, B: 0x0f, A: 0xff},
}

// ParsePalette reads exactly four "#rrggbb" (or "rrggbb") colours.
func ParsePalette(hex []string) (Palette, error) {
	var p Palette
	if len(hex) != len(p) {
		return p, fmt.Errorf("palette: %d colours, want %d", len(hex), len(p))
	}
	for i, h := range hex {
		s := strings.TrimPrefix(strings.TrimSpace(h), "#")
		if len(s) != 6 {
			return p, fmt.Errorf("palette: colour %d %q is not #rrggbb", i, h)
		}
		v, err := strconv.ParseUint(s, 16, 32)
		if err != nil {
			return p, fmt.Errorf("palette: colour %d %q: %w", i, h, err)
		}
		p[i] = color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
	}
	return p, nil
}

// Color returns the palette as an image/color palette.
func (p Palette) Color() color.Palette {
	cp := make(color.Palette, len(p))
	for i, c := range p {
		cp[i] = c
	}
	return cp
}
