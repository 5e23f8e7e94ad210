package batch

import (
	"encoding/json"
	"fmt"
	"os"
)

// Manifest describes an export run.
type Manifest struct {
	Width   int             `json:"width"`
	Height  int             `json:"height"`
	Upscale int             `json:"upscale"`
	Rotate  uint8           `json:"rotate"`
	Scroll  uint8           `json:"scroll"`
	Texture string          `json:"texture"`
	Palette []string        `json:"palette"`
	GIF     string          `json:"gif,omitempty"`
	Frames  []ManifestEntry `json:"frames"`
}

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Frame int    `json:"frame"`
	Time  uint32 `json:"time"`
	Image string `json:"image"`
}

// NewManifest describes the successful frames of a run.
func NewManifest(cfg Config, texture string, results []Result) Manifest {
	g := cfg.Renderer.Geometry()
	m := Manifest{
		Width:   g.Width,
		Height:  g.Height,
		Upscale: max(cfg.Upscale, 1),
		Texture: texture,
		Frames:  make([]ManifestEntry, 0, len(results)),
	}
	motion := cfg.Renderer.Motion()
	m.Rotate, m.Scroll = motion.Rotate, motion.Scroll
	for _, c := range cfg.Palette {
		m.Palette = append(m.Palette, fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
	}
	for _, r := range results {
		if !r.Success {
			continue
		}
		m.Frames = append(m.Frames, ManifestEntry{Frame: r.Frame, Time: r.Time, Image: r.File})
	}
	return m
}

// WriteManifest writes manifest.json to the output directory.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
