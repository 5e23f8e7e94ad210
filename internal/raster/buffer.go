package raster

import "tunnel-renderer/internal/geometry"

const pixelMask = geometry.Colors - 1

// NewFrame allocates a packed frame buffer of g.FrameWords() bytes. Each byte
// holds four horizontally adjacent 2-bit colour indices, leftmost pixel in
// the high bits.
func NewFrame(g geometry.Geometry) []byte {
	return make([]byte, g.FrameWords())
}

// Pack combines four colour indices, in x order, into one word.
func Pack(p0, p1, p2, p3 uint8) byte {
	return (p0&pixelMask)<<6 | (p1&pixelMask)<<4 | (p2&pixelMask)<<2 | p3&pixelMask
}

// Unpack splits a word into its four colour indices in x order.
func Unpack(w byte) [geometry.PixelsPerWord]uint8 {
	return [geometry.PixelsPerWord]uint8{w >> 6, (w >> 4) & pixelMask, (w >> 2) & pixelMask, w & pixelMask}
}

// PixelAt returns the colour index of pixel (x, y) in a packed frame.
func PixelAt(g geometry.Geometry, frame []byte, x, y int) uint8 {
	w := frame[y*g.Stride()+x/geometry.PixelsPerWord]
	shift := uint(geometry.BitsPerPixel * (geometry.PixelsPerWord - 1 - x%geometry.PixelsPerWord))
	return (w >> shift) & pixelMask
}
