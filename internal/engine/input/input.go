// Package input turns SDL2 events into viewer events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Event types for viewer use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventDrag  // orbit drag by mouse or one finger
	EventZoom  // wheel steps, positive zooms in
	EventPinch // two-finger pinch, positive spreads
)

// touchMouseID marks mouse events SDL synthesizes from touches.
const touchMouseID = ^uint32(0)

const leftButtonMask = 1 << (sdl.BUTTON_LEFT - 1)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int

	// Drag deltas. Mouse deltas are pixels; finger deltas are fractions of
	// the window and set Normalized.
	DX, DY     float32
	Normalized bool

	Amount float32 // wheel steps or pinch distance delta
}

// Input handles all input processing.
type Input struct {
	events  []Event
	fingers int
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if ev, ok := i.Translate(event); ok {
			i.events = append(i.events, ev)
			if ev.Type == EventQuit {
				quit = true
			}
		}
	}
	return quit
}

// Translate converts one SDL event. It reports false for events the viewer
// ignores.
func (i *Input) Translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED || e.Event == sdl.WINDOWEVENT_RESIZED {
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
			return Event{Type: EventKeyDown, Key: e.Keysym.Scancode}, true
		}

	case *sdl.MouseMotionEvent:
		if e.Which == touchMouseID || e.State&leftButtonMask == 0 {
			return Event{}, false
		}
		return Event{Type: EventDrag, DX: float32(e.XRel), DY: float32(e.YRel)}, true

	case *sdl.MouseWheelEvent:
		if e.Which == touchMouseID || e.Y == 0 {
			return Event{}, false
		}
		steps := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			steps = -steps
		}
		return Event{Type: EventZoom, Amount: steps}, true

	case *sdl.TouchFingerEvent:
		switch e.Type {
		case sdl.FINGERDOWN:
			i.fingers++
		case sdl.FINGERUP:
			i.fingers = max(i.fingers-1, 0)
		case sdl.FINGERMOTION:
			// Two or more fingers pinch; see MultiGestureEvent.
			if i.fingers == 1 {
				return Event{Type: EventDrag, DX: e.DX, DY: e.DY, Normalized: true}, true
			}
		}

	case *sdl.MultiGestureEvent:
		if e.NumFingers >= 2 && e.DDist != 0 {
			return Event{Type: EventPinch, Amount: e.DDist}, true
		}
	}
	return Event{}, false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}
