package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"tunnel-renderer/internal/config"
	"tunnel-renderer/internal/postprocess"
	"tunnel-renderer/internal/texture"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// dumpTexture writes the quantized texture as a palette image, scaled up by
// zoom, and prints how often each level occurs. The extension of dst picks
// PNG or WebP.
func dumpTexture(textures *texture.Cache, name, dst string, pal postprocess.Palette, zoom int) error {
	ext := strings.ToLower(filepath.Ext(dst))
	if ext != ".png" && ext != ".webp" {
		return fmt.Errorf("%s: unsupported preview format %q", dst, ext)
	}
	tex, err := textures.Load(name)
	if err != nil {
		return err
	}

	img := image.NewPaletted(image.Rect(0, 0, tex.Width, tex.Height), pal.Color())
	copy(img.Pix, tex.Pix)
	img = postprocess.Upscale(img, zoom)

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer f.Close()

	if ext == ".png" {
		err = png.Encode(f, img)
	} else {
		rgba := image.NewNRGBA(img.Bounds())
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
		err = nativewebp.Encode(f, rgba, nil)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", dst, err)
	}

	var hist [4]int
	for _, p := range tex.Pix {
		hist[p]++
	}
	fmt.Printf("OK  %s -> %s  (%dx%d, levels %v)\n", name, dst, tex.Width, tex.Height, hist)
	return nil
}

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	texDir := flag.String("texture-dir", "", "Directory searched for texture images")
	outputDir := flag.String("output", ".", "Directory for the previews")
	zoom := flag.Int("zoom", 2, "Integer zoom of the preview")
	format := flag.String("format", "webp", "Preview format: webp or png")
	list := flag.Bool("list", false, "List available textures and exit")
	flag.Parse()

	if *format != "webp" && *format != "png" {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (want webp or png)\n", *format)
		os.Exit(1)
	}

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{TextureDir: *texDir, Rotate: -1, Scroll: -1})

	pal, err := cfg.ColorPalette()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	textures := cfg.OpenTextures()

	names := flag.Args()
	if *list || len(names) == 0 {
		for _, n := range textures.Names() {
			fmt.Println(n)
		}
		return
	}

	errors := 0
	for _, name := range names {
		dst := filepath.Join(*outputDir, texture.Stem(name)+"_dump."+*format)
		if err := dumpTexture(textures, name, dst, pal, *zoom); err != nil {
			fmt.Fprintf(os.Stderr, "ERR %s: %v\n", name, err)
			errors++
		}
	}
	if errors > 0 {
		fmt.Printf("\nDone with %d error(s).\n", errors)
		os.Exit(1)
	}
	fmt.Println("\nDone.")
}
