//go:build baremetal

package display

import (
	"runtime/volatile"
	"unsafe"

	"tunnel-renderer/internal/geometry"
)

// The constrained build targets TinyGo (tinygo build -tags baremetal), whose
// runtime/volatile gives ordered access to memory-mapped registers.

// Board memory map for the packed 2bpp display controller. The framebuffer
// holds geometry.FrameWords bytes in the same row-major, leftmost-pixel-high
// layout the renderer produces, so frames need no conversion.
const (
	FramebufferBase uintptr = 0x0600_0000
	StatusRegister  uintptr = 0x0400_0004

	statusVBlank = 1 << 0
)

// Bare renders straight into display memory. Present waits for the next
// vertical blank; it never fails.
type Bare struct {
	fb     []byte
	status *uint16
}

// NewBare maps the framebuffer and status register. It allocates nothing.
func NewBare() Bare {
	return Bare{
		fb:     unsafe.Slice((*byte)(unsafe.Pointer(FramebufferBase)), geometry.FrameWords),
		status: (*uint16)(unsafe.Pointer(StatusRegister)),
	}
}

func (b Bare) Frame() []byte { return b.fb }

// Present blocks until the controller leaves the current vertical blank and
// enters the next one, so consecutive frames are one refresh apart.
func (b Bare) Present() error {
	for volatile.LoadUint16(b.status)&statusVBlank != 0 {
	}
	for volatile.LoadUint16(b.status)&statusVBlank == 0 {
	}
	return nil
}
