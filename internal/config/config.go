package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"tunnel-renderer/internal/geometry"
	"tunnel-renderer/internal/postprocess"
	"tunnel-renderer/internal/raster"
	"tunnel-renderer/internal/texture"
)

// Config holds all configurable paths, animation and output settings.
type Config struct {
	// Texture
	Texture     string `json:"texture"`      // procedural name or file stem in TextureDir
	TextureDir  string `json:"texture_dir"`  // searched recursively for image files
	TextureSize int    `json:"texture_size"` // edge of procedural textures

	// Animation
	Rotate  *int     `json:"rotate"` // angle steps per tick, 0..255
	Scroll  *int     `json:"scroll"` // depth steps per tick, 0..255
	Palette []string `json:"palette"`

	// Interactive
	Backend string `json:"backend"` // "window" or "term"
	TPS     int    `json:"tps"`

	// Export
	OutputDir string `json:"output_dir"`
	Frames    int    `json:"frames"`
	Start     int    `json:"start"`
	Step      int    `json:"step"`
	Upscale   int    `json:"upscale"`
	GIF       bool   `json:"gif"`
	GIFDelay  int    `json:"gif_delay"` // 100ths of a second
	Workers   int    `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings. Zero
// values (and -1 for Rotate/Scroll) mean "not given".
type Flags struct {
	Texture    string
	TextureDir string
	OutputDir  string
	Backend    string
	Frames     int
	Workers    int
	Upscale    int
	Rotate     int
	Scroll     int
	GIF        bool
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Texture != "" {
		c.Texture = flags.Texture
	}
	if flags.TextureDir != "" {
		c.TextureDir = flags.TextureDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Backend != "" {
		c.Backend = flags.Backend
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Upscale > 0 {
		c.Upscale = flags.Upscale
	}
	if flags.Rotate >= 0 {
		c.Rotate = &flags.Rotate
	}
	if flags.Scroll >= 0 {
		c.Scroll = &flags.Scroll
	}
	if flags.GIF {
		c.GIF = true
	}

	if c.TextureDir != "" && !filepath.IsAbs(c.TextureDir) {
		if abs, err := filepath.Abs(c.TextureDir); err == nil {
			c.TextureDir = abs
		}
	}

	// Defaults
	if c.Texture == "" {
		c.Texture = "xor"
	}
	if c.TextureSize <= 0 || c.TextureSize > texture.MaxSize || c.TextureSize&(c.TextureSize-1) != 0 {
		c.TextureSize = texture.MaxSize
	}
	if c.Rotate == nil {
		v := int(raster.DefaultMotion.Rotate)
		c.Rotate = &v
	}
	if c.Scroll == nil {
		v := int(raster.DefaultMotion.Scroll)
		c.Scroll = &v
	}
	if c.Backend == "" {
		c.Backend = "window"
	}
	if c.TPS <= 0 {
		c.TPS = 60
	}
	if c.OutputDir == "" {
		c.OutputDir = "frames"
	}
	if c.Frames <= 0 {
		c.Frames = 64
	}
	if c.Step <= 0 {
		c.Step = 1
	}
	if c.Upscale <= 0 {
		c.Upscale = geometry.Scale
	}
	if c.GIFDelay <= 0 {
		c.GIFDelay = 100 / c.TPS
		if c.GIFDelay < 2 {
			c.GIFDelay = 2
		}
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Motion returns the configured animation speed; values wrap modulo 256.
func (c *Config) Motion() raster.Motion {
	m := raster.DefaultMotion
	if c.Rotate != nil {
		m.Rotate = uint8(*c.Rotate)
	}
	if c.Scroll != nil {
		m.Scroll = uint8(*c.Scroll)
	}
	return m
}

// ColorPalette parses Palette, falling back to the default when empty.
func (c *Config) ColorPalette() (postprocess.Palette, error) {
	if len(c.Palette) == 0 {
		return postprocess.DefaultPalette, nil
	}
	return postprocess.ParsePalette(c.Palette)
}

// OpenTextures builds the texture index and cache for TextureDir.
func (c *Config) OpenTextures() *texture.Cache {
	return texture.NewCache(texture.BuildIndex(c.TextureDir), c.TextureSize)
}
