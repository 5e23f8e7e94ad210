package postprocess

import (
	"image"

	"tunnel-renderer/internal/geometry"
	"tunnel-renderer/internal/raster"
)

// Expand unpacks a packed frame into a paletted image, one byte per pixel.
func Expand(g geometry.Geometry, frame []byte, pal Palette) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, g.Width, g.Height), pal.Color())
	ExpandInto(img, g, frame)
	return img
}

// ExpandInto unpacks frame into an existing g.Width x g.Height paletted
// image without allocating.
func ExpandInto(dst *image.Paletted, g geometry.Geometry, frame []byte) {
	stride := g.Stride()
	for y := 0; y < g.Height; y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+g.Width]
		words := frame[y*stride : (y+1)*stride]
		for wx, w := range words {
			p := raster.Unpack(w)
			copy(row[wx*geometry.PixelsPerWord:], p[:])
		}
	}
}

// ExpandRGBA unpacks frame into dst as RGBA bytes (len = 4*Width*Height),
// the layout ebiten.Image.WritePixels expects. It does not allocate.
func ExpandRGBA(dst []byte, g geometry.Geometry, frame []byte, pal Palette) {
	stride := g.Stride()
	o := 0
	for y := 0; y < g.Height; y++ {
		for _, w := range frame[y*stride : (y+1)*stride] {
			for _, c := range raster.Unpack(w) {
				rgba := pal[c]
				dst[o] = rgba.R
				dst[o+1] = rgba.G
				dst[o+2] = rgba.B
				dst[o+3] = rgba.A
				o += 4
			}
		}
	}
}
