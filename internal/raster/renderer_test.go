package raster

import (
	"bytes"
	"testing"

	"tunnel-renderer/internal/geometry"
	"tunnel-renderer/internal/table"
)

// gridTexture is a 4x4 sampler with known indices, row-major by v.
type gridTexture [16]uint8

func (g *gridTexture) Sample(u, v uint8) uint8 { return g[int(v&3)*4+int(u&3)] }

var golden4x4 = gridTexture{
	0, 1, 2, 3,
	3, 2, 1, 0,
	1, 1, 2, 2,
	0, 3, 0, 3,
}

// constTexture returns the same index everywhere.
type constTexture uint8

func (c constTexture) Sample(_, _ uint8) uint8 { return uint8(c) }

func goldenRenderer(t *testing.T) *Renderer {
	t.Helper()
	g, err := geometry.New(16, 8, 2)
	if err != nil {
		t.Fatalf("geometry.New: %v", err)
	}
	return NewRenderer(table.Build(g), DefaultMotion)
}

func pixels(g geometry.Geometry, frame []byte) [][]uint8 {
	rows := make([][]uint8, g.Height)
	for y := range rows {
		rows[y] = make([]uint8, g.Width)
		for x := range rows[y] {
			rows[y][x] = PixelAt(g, frame, x, y)
		}
	}
	return rows
}

func TestRenderGolden(t *testing.T) {
	tests := []struct {
		name  string
		t     uint32
		grid  [4][8]uint8
		words []byte
	}{
		{
			name: "t=0",
			t:    0,
			grid: [4][8]uint8{
				{0, 2, 0, 0, 2, 0, 2, 0},
				{2, 0, 2, 0, 0, 0, 0, 2},
				{2, 0, 2, 0, 0, 0, 0, 2},
				{0, 2, 0, 0, 2, 0, 2, 0},
			},
			words: []byte{0x20, 0x88, 0x88, 0x02, 0x88, 0x02, 0x20, 0x88},
		},
		{
			name: "t=5",
			t:    5,
			grid: [4][8]uint8{
				{1, 2, 1, 0, 0, 1, 2, 1},
				{2, 1, 0, 1, 1, 0, 1, 2},
				{2, 1, 0, 1, 1, 0, 1, 2},
				{1, 2, 1, 0, 0, 1, 2, 1},
			},
			words: []byte{0x64, 0x19, 0x91, 0x46, 0x91, 0x46, 0x64, 0x19},
		},
	}
	r := goldenRenderer(t)
	g := r.Geometry()
	tex := golden4x4
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := NewFrame(g)
			r.Render(tt.t, &tex, frame)
			if !bytes.Equal(frame, tt.words) {
				t.Errorf("words = % x, want % x", frame, tt.words)
			}
			got := pixels(g, frame)
			for y := range tt.grid {
				for x := range tt.grid[y] {
					if got[y][x] != tt.grid[y][x] {
						t.Errorf("pixel (%d,%d) = %d, want %d", x, y, got[y][x], tt.grid[y][x])
					}
				}
			}
		})
	}
}

func TestRenderMirrorSymmetry(t *testing.T) {
	g := geometry.Default
	r := NewRenderer(table.Build(g), Motion{Rotate: 3, Scroll: 7})
	tex := golden4x4
	frame := NewFrame(g)
	for _, ts := range []uint32{0, 1, 99, 1 << 31} {
		r.Render(ts, &tex, frame)
		for y := 0; y < g.HalfHeight(); y++ {
			for x := 0; x < g.Width; x++ {
				top := PixelAt(g, frame, x, y)
				bottom := PixelAt(g, frame, x, g.Height-1-y)
				if top != bottom {
					t.Fatalf("t=%d: pixel (%d,%d)=%d, mirror=%d", ts, x, y, top, bottom)
				}
			}
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	g := geometry.Default
	r := NewRenderer(table.Build(g), DefaultMotion)
	tex := golden4x4
	a, b := NewFrame(g), NewFrame(g)
	r.Render(1234, &tex, a)
	r.Render(77, &tex, b)
	r.Render(1234, &tex, b)
	if !bytes.Equal(a, b) {
		t.Fatal("same time and texture produced different frames")
	}
}

func TestRenderOverwritesEveryWord(t *testing.T) {
	g := geometry.Default
	r := NewRenderer(table.Build(g), DefaultMotion)
	frame := NewFrame(g)
	for i := range frame {
		frame[i] = 0xA5
	}
	r.Render(3, constTexture(0), frame)
	for i, w := range frame {
		if w != 0 {
			t.Fatalf("word %d = %#02x, stale data survived", i, w)
		}
	}
	r.Render(4, constTexture(3), frame)
	for i, w := range frame {
		if w != 0xFF {
			t.Fatalf("word %d = %#02x, want 0xff", i, w)
		}
	}
}

func TestRenderLeavesTailUntouched(t *testing.T) {
	r := goldenRenderer(t)
	g := r.Geometry()
	frame := make([]byte, g.FrameWords()+2)
	frame[len(frame)-1], frame[len(frame)-2] = 0x5A, 0x5A
	tex := golden4x4
	r.Render(0, &tex, frame)
	if frame[len(frame)-1] != 0x5A || frame[len(frame)-2] != 0x5A {
		t.Fatal("Render wrote past FrameWords")
	}
}

func TestRenderShortBufferPanics(t *testing.T) {
	r := goldenRenderer(t)
	defer func() {
		if recover() == nil {
			t.Fatal("Render into a short buffer did not panic")
		}
	}()
	r.Render(0, constTexture(1), make([]byte, r.Geometry().FrameWords()-1))
}

func TestRenderDoesNotAllocate(t *testing.T) {
	g := geometry.Default
	r := NewRenderer(table.Build(g), DefaultMotion)
	var tex Sampler = constTexture(2)
	frame := NewFrame(g)
	var ts uint32
	allocs := testing.AllocsPerRun(5, func() {
		r.Render(ts, tex, frame)
		ts++
	})
	if allocs != 0 {
		t.Fatalf("Render allocated %.0f times per frame", allocs)
	}
}

func TestMotionContinuity(t *testing.T) {
	m := Motion{Rotate: 3, Scroll: 200}
	for ts := uint32(0); ts < 1000; ts++ {
		if d := m.Rotation(ts+1) - m.Rotation(ts); d != m.Rotate {
			t.Fatalf("rotation step at t=%d is %d, want %d", ts, d, m.Rotate)
		}
		if d := m.Offset(ts+1) - m.Offset(ts); d != m.Scroll {
			t.Fatalf("scroll step at t=%d is %d, want %d", ts, d, m.Scroll)
		}
	}
	// Wrapping the 32-bit counter keeps the step.
	if d := m.Rotation(0) - m.Rotation(^uint32(0)); d != m.Rotate {
		t.Fatalf("rotation step across counter wrap is %d", d)
	}
}

func TestMotionWrapIsTextureAdjacency(t *testing.T) {
	// Shifting the time by a whole texture period in angle must reproduce
	// the frame exactly: 256 rotation steps wrap onto the same texels.
	g := geometry.Default
	r := NewRenderer(table.Build(g), Motion{Rotate: 1})
	tex := golden4x4
	a, b := NewFrame(g), NewFrame(g)
	r.Render(10, &tex, a)
	r.Render(10+4, &tex, b)
	if !bytes.Equal(a, b) {
		t.Fatal("rotation by one texture width changed the frame")
	}
	r.Render(10+256, &tex, b)
	if !bytes.Equal(a, b) {
		t.Fatal("rotation by 256 steps changed the frame")
	}
}

func TestSetMotion(t *testing.T) {
	r := goldenRenderer(t)
	r.SetMotion(Motion{Rotate: 9, Scroll: 4})
	if got := r.Motion(); got != (Motion{Rotate: 9, Scroll: 4}) {
		t.Fatalf("Motion = %+v", got)
	}
}

func TestRenderReducesWideDepth(t *testing.T) {
	r := goldenRenderer(t)
	g := r.Geometry()
	tb := table.Build(g)

	// Same tables with every depth moved into the next 256 block.
	shifted := make([]uint16, len(tb.Depth))
	for i, d := range tb.Depth {
		shifted[i] = d%256 + 256
	}
	wide := NewRenderer(table.Wrap(g, tb.Angle, shifted), DefaultMotion)

	a, b := NewFrame(g), NewFrame(g)
	tex := golden4x4
	for _, tm := range []uint32{0, 5, 200} {
		r.Render(tm, &tex, a)
		wide.Render(tm, &tex, b)
		if !bytes.Equal(a, b) {
			t.Fatalf("t=%d: depth above 255 sampled differently", tm)
		}
	}
}
