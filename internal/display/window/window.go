// Package window presents the tunnel in a desktop window using Ebitengine.
package window

import (
	"errors"
	"fmt"

	"tunnel-renderer/internal/display"
	"tunnel-renderer/internal/geometry"
	"tunnel-renderer/internal/player"
	"tunnel-renderer/internal/postprocess"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a player to ebiten.Game. Update renders into the host
// framebuffer; Draw expands the last presented frame and uploads it.
type Game struct {
	player *player.Player
	host   *display.Host
	pal    postprocess.Palette

	front []byte // packed copy of the presented frame
	rgba  []byte // expanded pixels for WritePixels
	debug bool
}

// New creates the window game. host must be the presenter p renders into.
func New(p *player.Player, host *display.Host, pal postprocess.Palette) *Game {
	g := host.Geometry()
	return &Game{
		player: p,
		host:   host,
		pal:    pal,
		front:  make([]byte, g.FrameWords()),
		rgba:   make([]byte, 4*g.Width*g.Height),
	}
}

// Update handles input and renders the next frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.player.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.player.Nudge(1, 0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.player.Nudge(-1, 0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.player.Nudge(0, 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.player.Nudge(0, -1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.player.NextTexture()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}

	g.player.Step()
	return nil
}

// Draw uploads the last presented frame and the optional overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	geom := g.host.Geometry()
	g.host.Snapshot(g.front)
	postprocess.ExpandRGBA(g.rgba, geom, g.front, g.pal)
	screen.WritePixels(g.rgba)

	if g.debug {
		m := g.player.Motion()
		msg := fmt.Sprintf("FPS: %.1f  TPS: %.1f\nt: %d  render: %.2f ms\nrotate: %d  scroll: %d\ntexture: %s",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.player.Time(),
			g.player.RenderTime().Seconds()*1000, m.Rotate, m.Scroll, g.player.TextureName())
		if g.player.Paused() {
			msg += "\npaused"
		}
		ebitenutil.DebugPrint(screen, msg)
	}
}

// Layout reports the working resolution; Ebitengine scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	geom := g.host.Geometry()
	return geom.Width, geom.Height
}

// Run opens a native-resolution window and blocks until it is closed.
func Run(g *Game, title string, tps int) error {
	ebiten.SetWindowSize(geometry.NativeWidth, geometry.NativeHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(tps)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
