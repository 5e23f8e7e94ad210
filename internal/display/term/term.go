// Package term presents the tunnel in a terminal using tcell. Every cell
// shows two vertically stacked pixels with an upper half block: the
// foreground is the upper pixel, the background the lower one.
package term

import (
	"context"
	"fmt"
	"time"

	"tunnel-renderer/internal/display"
	"tunnel-renderer/internal/geometry"
	"tunnel-renderer/internal/player"
	"tunnel-renderer/internal/postprocess"
	"tunnel-renderer/internal/raster"

	"github.com/gdamore/tcell/v2"
)

const halfBlock = '▀'

// View draws packed frames onto a tcell screen.
type View struct {
	screen tcell.Screen
	geom   geometry.Geometry
	colors [geometry.Colors]tcell.Color
	front  []byte
}

// NewView prepares a view for frames of geometry g.
func NewView(screen tcell.Screen, g geometry.Geometry, pal postprocess.Palette) *View {
	v := &View{screen: screen, geom: g, front: make([]byte, g.FrameWords())}
	for i, c := range pal {
		v.colors[i] = tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return v
}

// Draw scales frame to the screen with nearest sampling and shows it.
func (v *View) Draw(frame []byte) {
	w, h := v.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}
	rows := 2 * h
	for cy := 0; cy < h; cy++ {
		yTop := (2 * cy) * v.geom.Height / rows
		yBot := (2*cy + 1) * v.geom.Height / rows
		for cx := 0; cx < w; cx++ {
			x := cx * v.geom.Width / w
			fg := v.colors[raster.PixelAt(v.geom, frame, x, yTop)]
			bg := v.colors[raster.PixelAt(v.geom, frame, x, yBot)]
			v.screen.SetContent(cx, cy, halfBlock, nil, tcell.StyleDefault.Foreground(fg).Background(bg))
		}
	}
	v.screen.Show()
}

// Run takes over the terminal and plays until ctx is done or the user
// quits with Esc, q or Ctrl-C.
func Run(ctx context.Context, p *player.Player, host *display.Host, pal postprocess.Palette, tps int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("term: open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("term: init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	return play(ctx, screen, p, host, NewView(screen, host.Geometry(), pal), tps)
}

func play(ctx context.Context, screen tcell.Screen, p *player.Player, host *display.Host, view *View, tps int) error {
	if tps <= 0 {
		tps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !handle(ev, p, screen) {
				return nil
			}
		case <-ticker.C:
			p.Step()
			host.Snapshot(view.front)
			view.Draw(view.front)
		}
	}
}

// handle applies one input event and reports whether to keep running.
func handle(ev tcell.Event, p *player.Player, screen tcell.Screen) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				p.TogglePause()
			case '+', '=':
				p.Nudge(1, 0)
			case '-':
				p.Nudge(-1, 0)
			case ']':
				p.Nudge(0, 1)
			case '[':
				p.Nudge(0, -1)
			case 't':
				p.NextTexture()
			}
		}
	case *tcell.EventResize:
		screen.Sync()
	}
	return true
}
