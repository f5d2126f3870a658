package app

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/lakeside/internal/engine/camera"
	"github.com/Faultbox/lakeside/internal/engine/input"
)

// actions are the non-camera requests found in one frame's events.
type actions struct {
	quit       bool
	screenshot bool
}

// applyInput drives cam from drag, wheel and pinch events. width and height
// are the window size in the units mouse deltas are reported in.
func applyInput(cam *camera.OrbitCamera, events []input.Event, width, height int) actions {
	var act actions
	for _, ev := range events {
		switch ev.Type {
		case input.EventQuit:
			act.quit = true
		case input.EventKeyDown:
			switch ev.Key {
			case sdl.SCANCODE_ESCAPE:
				act.quit = true
			case sdl.SCANCODE_F12:
				act.screenshot = true
			}
		case input.EventDrag:
			if ev.Normalized {
				cam.HandleDrag(ev.DX, ev.DY, 1, 1)
			} else {
				cam.HandleDrag(ev.DX, ev.DY, width, height)
			}
		case input.EventZoom:
			cam.HandleZoom(ev.Amount)
		case input.EventPinch:
			cam.HandlePinch(ev.Amount)
		}
	}
	return act
}
