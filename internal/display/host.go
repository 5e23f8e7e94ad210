package display

import (
	"sync"

	"tunnel-renderer/internal/geometry"
)

// Host is a double-buffered framebuffer in host memory. The renderer writes
// the back buffer; Present swaps it to the front, where readers on other
// goroutines can copy it with Snapshot.
type Host struct {
	mu    sync.Mutex
	geom  geometry.Geometry
	front []byte
	back  []byte
	count uint64
}

// NewHost allocates both buffers for g.
func NewHost(g geometry.Geometry) *Host {
	return &Host{
		geom:  g,
		front: make([]byte, g.FrameWords()),
		back:  make([]byte, g.FrameWords()),
	}
}

func (h *Host) Geometry() geometry.Geometry { return h.geom }

// Frame returns the back buffer.
func (h *Host) Frame() []byte { return h.back }

// Present publishes the back buffer.
func (h *Host) Present() error {
	h.mu.Lock()
	h.front, h.back = h.back, h.front
	h.count++
	h.mu.Unlock()
	return nil
}

// Snapshot copies the last presented frame into dst and returns the number
// of frames presented so far.
func (h *Host) Snapshot(dst []byte) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	copy(dst, h.front)
	return h.count
}
