package batch

import (
	"fmt"
	"image"
	"image/gif"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"tunnel-renderer/internal/postprocess"
	"tunnel-renderer/internal/raster"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// Config holds all shared resources for an export run.
type Config struct {
	OutputDir string
	Renderer  *raster.Renderer
	Texture   raster.Sampler
	Palette   postprocess.Palette
	Frames    int
	Start     uint32
	Step      uint32
	Upscale   int
	GIF       bool
	GIFDelay  int // 100ths of a second
	Workers   int
	Quiet     bool // suppress progress output
}

// Result holds the outcome of exporting one frame.
type Result struct {
	Frame   int
	Time    uint32
	File    string
	Success bool
	Error   string

	image *image.Paletted // kept for GIF assembly
}

// FrameName returns the file name of frame i.
func FrameName(i int) string {
	return fmt.Sprintf("frame_%04d.webp", i)
}

// Run renders and writes all frames using a worker pool. Every worker owns
// its own packed buffer; the renderer and texture are shared read-only.
func Run(cfg Config) []Result {
	total := cfg.Frames
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 && !cfg.Quiet {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f frames/sec\n", p, total, rate)
				}
			}
		}
	}()

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	// Worker pool
	frameChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := raster.NewFrame(cfg.Renderer.Geometry())
			for idx := range frameChan {
				results[idx] = processFrame(cfg, idx, buf)
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := 0; i < total; i++ {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	return results
}

func processFrame(cfg Config, idx int, buf []byte) Result {
	t := cfg.Start + uint32(idx)*cfg.Step
	res := Result{Frame: idx, Time: t, File: FrameName(idx)}

	cfg.Renderer.Render(t, cfg.Texture, buf)
	img := postprocess.Expand(cfg.Renderer.Geometry(), buf, cfg.Palette)
	img = postprocess.Upscale(img, cfg.Upscale)

	outPath := filepath.Join(cfg.OutputDir, res.File)
	f, err := os.Create(outPath)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer f.Close()

	rgba := image.NewNRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	if err := nativewebp.Encode(f, rgba, nil); err != nil {
		res.Error = fmt.Sprintf("WebP encode: %v", err)
		return res
	}

	// The GIF only carries frames that also made it to disk.
	if cfg.GIF {
		res.image = img
	}
	res.Success = true
	return res
}

// WriteGIF assembles the successfully rendered frames of a GIF-enabled run,
// in frame order, into one looping animation.
func WriteGIF(path string, results []Result, delay int) error {
	anim := &gif.GIF{LoopCount: 0}
	for _, r := range results {
		if r.image == nil {
			continue
		}
		anim.Image = append(anim.Image, r.image)
		anim.Delay = append(anim.Delay, delay)
	}
	if len(anim.Image) == 0 {
		return fmt.Errorf("batch: no frames for %s", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("batch: create %s: %w", path, err)
	}
	if err := gif.EncodeAll(f, anim); err != nil {
		f.Close()
		return fmt.Errorf("batch: encode %s: %w", path, err)
	}
	return f.Close()
}
