package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// decoders maps file extensions to image decoders. The tga package registers
// itself with image.Decode under an empty magic string, which matches any
// input, so formats are chosen by extension and image.Decode is never used.
var decoders = map[string]func(io.Reader) (image.Image, error){
	".png":  png.Decode,
	".tga":  tga.Decode,
	".bmp":  bmp.Decode,
	".gif":  gif.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".tif":  tiff.Decode,
	".tiff": tiff.Decode,
	".webp": webp.Decode,
}

// Load decodes an image file and quantizes it into a texture.
func Load(path string) (*Texture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}

	decode, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("texture: %s: unsupported image format", path)
	}
	img, err := decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}

	return Quantize(img), nil
}

// Quantize resamples img to a square power-of-two texture no larger than
// MaxSize and maps luminance to four colour indices, darkest first.
func Quantize(img image.Image) *Texture {
	b := img.Bounds()
	size := fitSize(max(b.Dx(), b.Dy()))

	gray := image.NewGray(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(gray, gray.Bounds(), img, b, draw.Src, nil)

	pix := make([]uint8, size*size)
	for y := 0; y < size; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+size]
		for x, l := range row {
			pix[y*size+x] = l >> 6
		}
	}
	t, _ := New(size, size, pix)
	return t
}

// fitSize returns the largest power of two <= n, clamped to [1, MaxSize].
func fitSize(n int) int {
	size := 1
	for size*2 <= n && size < MaxSize {
		size *= 2
	}
	return size
}
