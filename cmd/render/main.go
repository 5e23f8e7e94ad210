package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tunnel-renderer/internal/batch"
	"tunnel-renderer/internal/config"
	"tunnel-renderer/internal/geometry"
	"tunnel-renderer/internal/raster"
	"tunnel-renderer/internal/table"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	tex := flag.String("texture", "", "Procedural texture (xor, checker, rings) or image name (default: xor)")
	texDir := flag.String("texture-dir", "", "Directory searched for texture images")
	frames := flag.Int("frames", 0, "Number of frames to render (default: 64)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	outputDir := flag.String("output", "", "Output directory (default: frames)")
	upscale := flag.Int("upscale", 0, "Integer upscale factor (default: native scale)")
	rotate := flag.Int("rotate", -1, "Angle steps per tick, 0-255")
	scroll := flag.Int("scroll", -1, "Depth steps per tick, 0-255")
	gifOut := flag.Bool("gif", false, "Also write tunnel.gif")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Texture:    *tex,
		TextureDir: *texDir,
		OutputDir:  *outputDir,
		Frames:     *frames,
		Workers:    *workers,
		Upscale:    *upscale,
		Rotate:     *rotate,
		Scroll:     *scroll,
		GIF:        *gifOut,
	})

	pal, err := cfg.ColorPalette()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	textures := cfg.OpenTextures()
	sampler, err := textures.Load(cfg.Texture)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading texture: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	g := geometry.Default
	tableStart := time.Now()
	renderer := raster.NewRenderer(table.Build(g), cfg.Motion())
	motion := renderer.Motion()

	fmt.Printf("Tunnel %dx%d -> WebP x%d\n", g.Width, g.Height, cfg.Upscale)
	fmt.Printf("Tables built in %s\n", time.Since(tableStart).Round(time.Microsecond))
	fmt.Printf("Texture: %s (%dx%d), rotate %d, scroll %d\n",
		cfg.Texture, sampler.Width, sampler.Height, motion.Rotate, motion.Scroll)
	fmt.Printf("Frames: %d, Workers: %d\n", cfg.Frames, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		OutputDir: cfg.OutputDir,
		Renderer:  renderer,
		Texture:   sampler,
		Palette:   pal,
		Frames:    cfg.Frames,
		Start:     uint32(cfg.Start),
		Step:      uint32(cfg.Step),
		Upscale:   cfg.Upscale,
		GIF:       cfg.GIF,
		GIFDelay:  cfg.GIFDelay,
		Workers:   cfg.Workers,
	}

	results := batch.Run(batchCfg)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(results))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(len(errors), 20)
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.File, e.Error)
		}
	}

	manifest := batch.NewManifest(batchCfg, cfg.Texture, results)

	if cfg.GIF {
		gifPath := filepath.Join(cfg.OutputDir, "tunnel.gif")
		if err := batch.WriteGIF(gifPath, results, cfg.GIFDelay); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else {
			manifest.GIF = filepath.Base(gifPath)
			fmt.Printf("GIF: %s\n", gifPath)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, manifest); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
