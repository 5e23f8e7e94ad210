package texture

// Procedural textures for runs without a texture file. All of them are
// square with a power-of-two edge and panic on an invalid size.

// XOR returns the classic xor pattern quantized to four colours.
func XOR(size int) *Texture {
	scale := MaxSize / size
	return generate(size, func(x, y int) uint8 {
		return uint8(((x ^ y) * scale) >> 6)
	})
}

// Checker returns a board of cells x cells squares cycling through the four
// colours along each diagonal.
func Checker(size, cells int) *Texture {
	cell := size / cells
	if cell < 1 {
		cell = 1
	}
	return generate(size, func(x, y int) uint8 {
		return uint8((x/cell + y/cell) & 3)
	})
}

// Rings returns four horizontal bands. Bands run along the depth axis, so in
// the tunnel they appear as concentric rings.
func Rings(size int) *Texture {
	return generate(size, func(_, y int) uint8 {
		return uint8(y * 4 / size)
	})
}

// ByName returns a procedural texture by name, or nil if unknown.
func ByName(name string, size int) *Texture {
	switch name {
	case "xor":
		return XOR(size)
	case "checker":
		return Checker(size, 8)
	case "rings":
		return Rings(size)
	}
	return nil
}

func generate(size int, f func(x, y int) uint8) *Texture {
	pix := make([]uint8, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			pix[y*size+x] = f(x, y) & 3
		}
	}
	t, err := New(size, size, pix)
	if err != nil {
		panic(err)
	}
	return t
}
