// Package player drives the tunnel for the interactive hosted back-ends:
// it owns the animation clock and the live controls, and renders one frame
// per tick into a display.Presenter.
package player

import (
	"fmt"
	"time"

	"tunnel-renderer/internal/display"
	"tunnel-renderer/internal/raster"
	"tunnel-renderer/internal/texture"
)

// Player is not safe for concurrent use; back-ends call it from their
// update loop only.
type Player struct {
	renderer *raster.Renderer
	out      display.Presenter
	textures *texture.Cache

	names  []string
	texIdx int
	tex    *texture.Texture

	t          uint32
	paused     bool
	renderTime time.Duration
	dropped    int
}

// New prepares a player showing the named texture.
func New(r *raster.Renderer, out display.Presenter, textures *texture.Cache, name string) (*Player, error) {
	tex, err := textures.Load(name)
	if err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}
	p := &Player{
		renderer: r,
		out:      out,
		textures: textures,
		names:    textures.Names(),
		tex:      tex,
	}
	stem := texture.Stem(name)
	for i, n := range p.names {
		if n == stem {
			p.texIdx = i
			break
		}
	}
	return p, nil
}

// Step advances the clock unless paused, renders and presents one frame.
// A failed Present is counted and otherwise ignored.
func (p *Player) Step() {
	if !p.paused {
		p.t++
	}
	start := time.Now()
	p.renderer.Render(p.t, p.tex, p.out.Frame())
	p.renderTime = time.Since(start)
	if err := p.out.Present(); err != nil {
		p.dropped++
	}
}

// TogglePause freezes or resumes the clock.
func (p *Player) TogglePause() { p.paused = !p.paused }

// Nudge changes rotation and scroll speed by the given steps, wrapping
// modulo 256.
func (p *Player) Nudge(rotate, scroll int) {
	m := p.renderer.Motion()
	m.Rotate += uint8(rotate)
	m.Scroll += uint8(scroll)
	p.renderer.SetMotion(m)
}

// NextTexture switches to the next texture that loads and returns its name.
func (p *Player) NextTexture() string {
	for range p.names {
		p.texIdx = (p.texIdx + 1) % len(p.names)
		if tex := p.textures.Resolve(p.names[p.texIdx]); tex != nil {
			p.tex = tex
			break
		}
	}
	return p.TextureName()
}

func (p *Player) Time() uint32              { return p.t }
func (p *Player) Paused() bool              { return p.paused }
func (p *Player) Motion() raster.Motion     { return p.renderer.Motion() }
func (p *Player) TextureName() string       { return p.names[p.texIdx] }
func (p *Player) RenderTime() time.Duration { return p.renderTime }
func (p *Player) Dropped() int              { return p.dropped }
