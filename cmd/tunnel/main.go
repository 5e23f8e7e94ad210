package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"tunnel-renderer/internal/config"
	"tunnel-renderer/internal/display"
	"tunnel-renderer/internal/display/term"
	"tunnel-renderer/internal/display/window"
	"tunnel-renderer/internal/geometry"
	"tunnel-renderer/internal/player"
	"tunnel-renderer/internal/raster"
	"tunnel-renderer/internal/table"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	tex := flag.String("texture", "", "Procedural texture (xor, checker, rings) or image name (default: xor)")
	texDir := flag.String("texture-dir", "", "Directory searched for texture images")
	backend := flag.String("backend", "", "Output: window or term (default: window)")
	rotate := flag.Int("rotate", -1, "Angle steps per tick, 0-255")
	scroll := flag.Int("scroll", -1, "Depth steps per tick, 0-255")
	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
	}
	cfg.Resolve(config.Flags{
		Texture:    *tex,
		TextureDir: *texDir,
		Backend:    *backend,
		Rotate:     *rotate,
		Scroll:     *scroll,
	})

	pal, err := cfg.ColorPalette()
	if err != nil {
		log.Fatal(err)
	}

	g := geometry.Default
	renderer := raster.NewRenderer(table.Build(g), cfg.Motion())
	host := display.NewHost(g)
	p, err := player.New(renderer, host, cfg.OpenTextures(), cfg.Texture)
	if err != nil {
		log.Fatal(err)
	}

	switch cfg.Backend {
	case "window":
		err = window.Run(window.New(p, host, pal), "Tunnel", cfg.TPS)
	case "term":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err = term.Run(ctx, p, host, pal, cfg.TPS)
		stop()
	default:
		log.Fatalf("unknown backend %q (want window or term)", cfg.Backend)
	}
	if err != nil {
		log.Fatal(err)
	}
	if n := p.Dropped(); n > 0 {
		log.Printf("%d frames dropped", n)
	}
}
