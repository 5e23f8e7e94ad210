// Package raster renders tunnel frames from prebuilt lookup tables into
// packed 2-bit pixel buffers.
package raster

import (
	"tunnel-renderer/internal/geometry"
	"tunnel-renderer/internal/table"
)

// Motion sets the animation speed. Rotation and scroll advance linearly with
// the time value and wrap modulo 256, which any power-of-two texture up to
// 256 texels divides, so the wrap is seamless.
type Motion struct {
	Rotate uint8 // angle steps per tick
	Scroll uint8 // depth steps per tick
}

// DefaultMotion turns slowly while moving forward.
var DefaultMotion = Motion{Rotate: 1, Scroll: 2}

// Rotation returns the angle offset at time t.
func (m Motion) Rotation(t uint32) uint8 { return uint8(t * uint32(m.Rotate)) }

// Offset returns the depth offset at time t.
func (m Motion) Offset(t uint32) uint8 { return uint8(t * uint32(m.Scroll)) }

// Renderer draws frames for one set of tables. Its state is read-only, so a
// single Renderer may be shared by goroutines rendering into distinct
// buffers.
type Renderer struct {
	tables *table.Tables
	geom   geometry.Geometry
	motion Motion
}

// NewRenderer binds a renderer to built tables. Tables are only obtainable
// from the table package, so a Renderer cannot exist before they are built.
func NewRenderer(t *table.Tables, m Motion) *Renderer {
	return &Renderer{tables: t, geom: t.Geometry, motion: m}
}

// Geometry returns the frame geometry the renderer draws.
func (r *Renderer) Geometry() geometry.Geometry { return r.geom }

// Motion returns the animation speed.
func (r *Renderer) Motion() Motion { return r.motion }

// SetMotion changes the animation speed. It must not be called while a
// render is in flight.
func (r *Renderer) SetMotion(m Motion) { r.motion = m }

// Render fills out with the frame at time t. Only the upper half is sampled;
// every packed word is written to its row and to the mirrored row, so out
// holds no data from earlier frames afterwards. out must hold at least
// Geometry().FrameWords() bytes. Render does not allocate and its cost does
// not depend on t or on the texture contents.
func (r *Renderer) Render(t uint32, tex Sampler, out []byte) {
	g := r.geom
	stride := g.Stride()
	rot := r.motion.Rotation(t)
	scroll := r.motion.Offset(t)
	angle := r.tables.Angle
	depth := r.tables.Depth

	_ = out[g.FrameWords()-1]
	i := 0
	for y := 0; y < g.HalfHeight(); y++ {
		top := out[y*stride : (y+1)*stride]
		bottom := out[(g.Height-1-y)*stride : (g.Height-y)*stride]
		for wx := range top {
			var w byte
			for k := 0; k < geometry.PixelsPerWord; k++ {
				c := tex.Sample(angle[i]+rot, uint8(depth[i])+scroll)
				w = w<<geometry.BitsPerPixel | c&pixelMask
				i++
			}
			top[wx] = w
			bottom[wx] = w
		}
	}
}
