package batch

import (
	"bytes"
	"encoding/json"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"tunnel-renderer/internal/geometry"
	"tunnel-renderer/internal/postprocess"
	"tunnel-renderer/internal/raster"
	"tunnel-renderer/internal/table"
	"tunnel-renderer/internal/texture"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	g, err := geometry.New(32, 16, 2)
	if err != nil {
		t.Fatal(err)
	}
	return Config{
		OutputDir: t.TempDir(),
		Renderer:  raster.NewRenderer(table.Build(g), raster.DefaultMotion),
		Texture:   texture.XOR(16),
		Palette:   postprocess.DefaultPalette,
		Frames:    5,
		Start:     10,
		Step:      3,
		Upscale:   2,
		GIF:       true,
		GIFDelay:  4,
		Workers:   2,
		Quiet:     true,
	}
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	results := Run(cfg)
	if len(results) != cfg.Frames {
		t.Fatalf("%d results, want %d", len(results), cfg.Frames)
	}
	for i, r := range results {
		if !r.Success {
			t.Fatalf("frame %d failed: %s", i, r.Error)
		}
		if r.Frame != i || r.Time != cfg.Start+uint32(i)*cfg.Step {
			t.Errorf("result %d: frame %d time %d", i, r.Frame, r.Time)
		}
		data, err := os.ReadFile(filepath.Join(cfg.OutputDir, FrameName(i)))
		if err != nil {
			t.Fatalf("frame %d not written: %v", i, err)
		}
		if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
			t.Fatalf("frame %d is not a WebP file", i)
		}
		if r.image.Bounds().Dx() != 32 || r.image.Bounds().Dy() != 16 {
			t.Fatalf("frame %d upscaled to %v", i, r.image.Bounds())
		}
	}

	gifPath := filepath.Join(cfg.OutputDir, "tunnel.gif")
	if err := WriteGIF(gifPath, results, cfg.GIFDelay); err != nil {
		t.Fatalf("WriteGIF: %v", err)
	}
	data, err := os.ReadFile(gifPath)
	if err != nil {
		t.Fatal(err)
	}
	anim, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode gif: %v", err)
	}
	if len(anim.Image) != cfg.Frames || anim.Delay[0] != cfg.GIFDelay {
		t.Fatalf("gif has %d frames, delay %d", len(anim.Image), anim.Delay[0])
	}
}

func TestRunMatchesDirectRender(t *testing.T) {
	cfg := testConfig(t)
	cfg.Upscale = 1
	results := Run(cfg)

	g := cfg.Renderer.Geometry()
	frame := raster.NewFrame(g)
	for _, r := range results {
		cfg.Renderer.Render(r.Time, cfg.Texture, frame)
		want := postprocess.Expand(g, frame, cfg.Palette)
		if !bytes.Equal(r.image.Pix, want.Pix) {
			t.Fatalf("frame %d differs from a direct render at t=%d", r.Frame, r.Time)
		}
	}
}

func TestWriteGIFWithoutFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.gif")
	if err := WriteGIF(path, []Result{{Success: true}}, 4); err == nil {
		t.Fatal("WriteGIF without images succeeded")
	}
}

func TestRunReportsWriteErrors(t *testing.T) {
	cfg := testConfig(t)
	cfg.OutputDir = filepath.Join(cfg.OutputDir, "missing", "dir")
	cfg.Frames = 2
	results := Run(cfg)
	for _, r := range results {
		if r.Success || r.Error == "" || r.image != nil {
			t.Fatalf("frame %d into a missing directory: %+v", r.Frame, r)
		}
	}
	if err := WriteGIF(filepath.Join(t.TempDir(), "tunnel.gif"), results, cfg.GIFDelay); err == nil {
		t.Fatal("GIF written from frames that failed to save")
	}
}

func TestManifest(t *testing.T) {
	cfg := testConfig(t)
	results := []Result{
		{Frame: 0, Time: 10, File: FrameName(0), Success: true},
		{Frame: 1, Time: 13, File: FrameName(1), Error: "boom"},
	}
	m := NewManifest(cfg, "xor", results)
	if len(m.Frames) != 1 || m.Frames[0].Image != "frame_0000.webp" {
		t.Fatalf("frames = %+v", m.Frames)
	}
	if m.Palette[0] != "#0f380f" || m.Width != 16 || m.Height != 8 {
		t.Fatalf("manifest = %+v", m)
	}

	path := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := WriteManifest(path, m); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var back Manifest
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("manifest is not JSON: %v", err)
	}
	if back.Rotate != raster.DefaultMotion.Rotate || back.Texture != "xor" {
		t.Fatalf("round trip = %+v", back)
	}
}
