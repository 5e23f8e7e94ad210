// Package table precomputes the per-pixel tunnel coordinates.
//
// Each entry maps one pixel of the upper half-frame to a polar angle and a
// depth. The tables are built once, before any frame is rendered, and are
// read-only afterwards.
package table

import (
	"fmt"

	"tunnel-renderer/internal/geometry"
	"tunnel-renderer/internal/mathutil"
)

const (
	// AngleSteps is the number of quantized angles in one turn.
	AngleSteps = 256

	// DepthScale is the numerator of the reciprocal depth mapping, in
	// half-pixel units. DepthScale/1 still fits a uint16.
	DepthScale = 16384

	angleShift = 8 // mathutil.FullCircle / AngleSteps == 1<<angleShift
)

// Tables holds the angle and depth lookup tables for one geometry. Entry
// y*Width+x describes pixel (x, y) with y < HalfHeight. Depth keeps the full
// reciprocal; the renderer reduces it to texture coordinates.
type Tables struct {
	Geometry geometry.Geometry
	Angle    []uint8
	Depth    []uint16
}

// Build allocates and fills the tables for g.
func Build(g geometry.Geometry) *Tables {
	n := g.BufferSize()
	t := &Tables{
		Geometry: g,
		Angle:    make([]uint8, n),
		Depth:    make([]uint16, n),
	}
	BuildInto(g, t.Angle, t.Depth)
	return t
}

// Wrap adopts caller-owned storage already filled by BuildInto. The
// constrained build uses it to keep the tables in static arrays.
func Wrap(g geometry.Geometry, angle []uint8, depth []uint16) *Tables {
	return &Tables{Geometry: g, Angle: angle, Depth: depth}
}

// BuildInto fills angle and depth, which must both hold g.BufferSize()
// entries. It does not allocate.
func BuildInto(g geometry.Geometry, angle []uint8, depth []uint16) {
	n := g.BufferSize()
	if len(angle) != n || len(depth) != n {
		panic(fmt.Sprintf("table: storage %d/%d entries, geometry needs %d", len(angle), len(depth), n))
	}
	i := 0
	for y := 0; y < g.HalfHeight(); y++ {
		dy := 2*y + 1 - g.Height
		for x := 0; x < g.Width; x++ {
			dx := 2*x + 1 - g.Width
			angle[i] = AngleAt(dx, dy)
			depth[i] = DepthAt(dx, dy)
			i++
		}
	}
}

// AngleAt quantizes the polar angle of the offset (dx, dy) from the screen
// centre to AngleSteps steps. The only discontinuity is the wrap from
// AngleSteps-1 back to 0.
func AngleAt(dx, dy int) uint8 {
	a := uint32(mathutil.Atan2(dy, dx))
	return uint8((a + 1<<(angleShift-1)) >> angleShift)
}

// DepthAt maps the distance of (dx, dy) from the screen centre to a depth
// that never decreases towards the centre. Distances below one unit are
// clamped, so the exact centre is defined.
func DepthAt(dx, dy int) uint16 {
	d := mathutil.Isqrt(uint32(dx*dx + dy*dy))
	if d < 1 {
		d = 1
	}
	return uint16(DepthScale / d)
}
