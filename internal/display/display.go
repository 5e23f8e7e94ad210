// Package display defines the back-end capability the tunnel driver needs:
// a packed frame buffer to render into and a way to present it.
package display

// Presenter owns a packed frame buffer of exactly geometry.FrameWords bytes.
// The driver renders into Frame and then calls Present. A Present error
// means the frame was not shown; drivers may ignore it and render the next.
type Presenter interface {
	Frame() []byte
	Present() error
}
