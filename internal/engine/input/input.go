// Package input collects SDL2 events into a per-frame summary for the viewer.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Frame summarizes the input received since the previous poll.
type Frame struct {
	Quit bool

	// Resized is set when the window size changed; Width/Height hold the new size.
	Resized       bool
	Width, Height int

	// Mouse motion while the left button is held, in pixels.
	DragX, DragY float32

	// Wheel is the accumulated vertical scroll.
	Wheel float32

	// Pressed lists keys that went down this frame.
	Pressed []sdl.Scancode
}

// Input tracks button state across frames.
type Input struct {
	dragging bool
	frame    Frame
}

// New creates a new input handler.
func New() *Input {
	return &Input{}
}

// Poll drains the SDL event queue and returns this frame's summary.
// The returned Frame is reused by the next Poll.
func (i *Input) Poll() *Frame {
	i.frame = Frame{Pressed: i.frame.Pressed[:0]}

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.frame.Quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.frame.Resized = true
				i.frame.Width, i.frame.Height = int(e.Data1), int(e.Data2)
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.frame.Pressed = append(i.frame.Pressed, e.Keysym.Scancode)
				if e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
					i.frame.Quit = true
				}
			}

		case *sdl.MouseButtonEvent:
			if e.Button == sdl.BUTTON_LEFT {
				i.dragging = e.Type == sdl.MOUSEBUTTONDOWN
			}

		case *sdl.MouseMotionEvent:
			if i.dragging {
				i.frame.DragX += float32(e.XRel)
				i.frame.DragY += float32(e.YRel)
			}

		case *sdl.MouseWheelEvent:
			i.frame.Wheel += float32(e.Y)
		}
	}

	return &i.frame
}
