package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/lakeside/internal/engine/camera"
	"github.com/Faultbox/lakeside/internal/engine/input"
)

func TestApplyInput_Camera(t *testing.T) {
	cam := camera.NewOrbitCamera()
	startDist := cam.Distance

	act := applyInput(cam, []input.Event{
		{Type: input.EventDrag, DX: 400, DY: 0},
		{Type: input.EventZoom, Amount: 1},
	}, 800, 600)

	assert.False(t, act.quit)
	assert.InDelta(t, -cam.DragSpeed/2, cam.Yaw, 1e-5)
	assert.Less(t, cam.Distance, startDist)
}

func TestApplyInput_NormalizedDragMatchesPixels(t *testing.T) {
	a, b := camera.NewOrbitCamera(), camera.NewOrbitCamera()

	applyInput(a, []input.Event{{Type: input.EventDrag, DY: 60}}, 800, 600)
	applyInput(b, []input.Event{{Type: input.EventDrag, DY: 0.1, Normalized: true}}, 800, 600)

	assert.InDelta(t, a.Pitch, b.Pitch, 1e-5)
}

func TestApplyInput_Pinch(t *testing.T) {
	cam := camera.NewOrbitCamera()
	start := cam.Distance
	applyInput(cam, []input.Event{{Type: input.EventPinch, Amount: -0.05}}, 800, 600)
	assert.Greater(t, cam.Distance, start)
}

func TestApplyInput_Keys(t *testing.T) {
	cam := camera.NewOrbitCamera()

	act := applyInput(cam, []input.Event{{Type: input.EventKeyDown, Key: sdl.SCANCODE_F12}}, 800, 600)
	assert.True(t, act.screenshot)
	assert.False(t, act.quit)

	act = applyInput(cam, []input.Event{{Type: input.EventKeyDown, Key: sdl.SCANCODE_ESCAPE}}, 800, 600)
	assert.True(t, act.quit)

	act = applyInput(cam, []input.Event{{Type: input.EventQuit}}, 800, 600)
	assert.True(t, act.quit)
}
