//go:build baremetal

// Command tunnel-bare runs the tunnel on the constrained target. Every buffer
// is static; nothing is allocated after start-up.
package main

import (
	"tunnel-renderer/internal/display"
	"tunnel-renderer/internal/geometry"
	"tunnel-renderer/internal/raster"
	"tunnel-renderer/internal/table"
)

var (
	angle [geometry.BufferSize]uint8
	depth [geometry.BufferSize]uint16
)

// xorPattern is the 256x256 xor texture computed on the fly, matching
// texture.XOR(256) without its backing array.
type xorPattern struct{}

func (xorPattern) Sample(u, v uint8) uint8 { return (u ^ v) >> 6 }

func main() {
	table.BuildInto(geometry.Default, angle[:], depth[:])
	r := raster.NewRenderer(table.Wrap(geometry.Default, angle[:], depth[:]), raster.DefaultMotion)
	out := display.NewBare()

	var tex xorPattern
	for t := uint32(0); ; t++ {
		r.Render(t, tex, out.Frame())
		out.Present()
	}
}
