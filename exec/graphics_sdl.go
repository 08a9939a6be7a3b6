//go:build !nogui && sdl

package exec

import (
	"fmt"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
)

// SDLDisplay is the Display backend for TRAP #2, presenting the emulated
// program's indexed framebuffer in an SDL window. Pixel values are palette
// indices into a fixed grayscale ramp; programs that want color map their
// own palette onto the same byte values by convention, not through this
// backend.
type SDLDisplay struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	tex      *sdl.Texture
	width    int32
	height   int32
}

// NewSDLDisplay opens a width x height window titled title and backs it
// with a streaming texture sized to match.
func NewSDLDisplay(width, height int, title string) (*SDLDisplay, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("initializing SDL: %w", err)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(width), int32(height), sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, fmt.Errorf("creating SDL window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return nil, fmt.Errorf("creating SDL renderer: %w", err)
	}

	tex, err := renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		sdl.TEXTUREACCESS_STREAMING, int32(width), int32(height))
	if err != nil {
		return nil, fmt.Errorf("creating SDL texture: %w", err)
	}

	return &SDLDisplay{window: window, renderer: renderer, tex: tex, width: int32(width), height: int32(height)}, nil
}

// Blit converts the indexed pixel rectangle to ABGR8888, updates the
// texture sub-rect, and presents the frame immediately; the interpreter
// blits synchronously from TRAP #2 rather than running a separate render
// loop.
func (d *SDLDisplay) Blit(x, y, w, h int, pixels []byte) error {
	if w <= 0 || h <= 0 {
		return nil
	}

	abgr := make([]uint32, w*h)
	for i, p := range pixels {
		abgr[i] = grayscaleABGR(p)
	}

	rect := &sdl.Rect{X: int32(x), Y: int32(y), W: int32(w), H: int32(h)}
	if err := d.tex.Update(rect, unsafe.Pointer(&abgr[0]), w*4); err != nil {
		return fmt.Errorf("updating SDL texture: %w", err)
	}
	if err := d.renderer.Copy(d.tex, nil, nil); err != nil {
		return fmt.Errorf("copying SDL texture: %w", err)
	}
	d.renderer.Present()

	// Drain pending events so the window stays responsive. No event changes
	// the emulator's state; a quit event only ends the drain early.
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch event.(type) {
		case *sdl.QuitEvent:
			return nil
		}
	}
	return nil
}

func grayscaleABGR(v byte) uint32 {
	return 0xff000000 | uint32(v)<<16 | uint32(v)<<8 | uint32(v)
}

// Close tears down the texture, renderer and window and shuts SDL down.
func (d *SDLDisplay) Close() error {
	_ = d.tex.Destroy()
	_ = d.renderer.Destroy()
	_ = d.window.Destroy()
	sdl.Quit()
	return nil
}
