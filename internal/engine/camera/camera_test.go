package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/lakeside/pkg/math"
)

func TestOrbitCamera_PitchClamped(t *testing.T) {
	c := NewOrbitCamera()

	c.HandleDrag(0, 1e6, 800, 600)
	assert.Equal(t, c.MaxPitch, c.Pitch)

	c.HandleDrag(0, -1e6, 800, 600)
	assert.Equal(t, c.MinPitch, c.Pitch)
}

func TestOrbitCamera_DistanceClamped(t *testing.T) {
	c := NewOrbitCamera()

	for i := 0; i < 200; i++ {
		c.HandleZoom(5)
	}
	assert.Equal(t, c.MinDistance, c.Distance)

	for i := 0; i < 200; i++ {
		c.HandleZoom(-5)
	}
	assert.Equal(t, c.MaxDistance, c.Distance)

	c.HandlePinch(100)
	assert.Equal(t, c.MinDistance, c.Distance)
	c.HandlePinch(-100)
	assert.Equal(t, c.MaxDistance, c.Distance)
}

func TestOrbitCamera_DragScalesWithViewport(t *testing.T) {
	a := NewOrbitCamera()
	b := NewOrbitCamera()

	a.HandleDrag(100, 0, 400, 300)
	b.HandleDrag(200, 0, 800, 600)
	assert.InDelta(t, a.Yaw, b.Yaw, 1e-6)

	c := NewOrbitCamera()
	c.HandleDrag(400, 0, 400, 300)
	assert.InDelta(t, -c.DragSpeed, c.Yaw, 1e-5)

	// An empty viewport is ignored.
	d := NewOrbitCamera()
	d.HandleDrag(100, 100, 0, 0)
	assert.Equal(t, NewOrbitCamera().Yaw, d.Yaw)
}

func TestOrbitCamera_Position(t *testing.T) {
	c := NewOrbitCamera()
	c.Distance = 10
	c.Pitch = 0
	c.Yaw = 0
	p := c.Position()
	assert.InDelta(t, 0, p.X, 1e-5)
	assert.InDelta(t, 0, p.Y, 1e-5)
	assert.InDelta(t, 10, p.Z, 1e-5)

	c.Pitch = math32.Pi / 4
	assert.InDelta(t, 10, c.Position().Length(), 1e-4)
}

func TestOrbitCamera_ViewMatrixMapsTargetInFront(t *testing.T) {
	c := NewOrbitCamera()
	c.Yaw = 0.7
	c.Pitch = 0.4

	view := c.ViewMatrix()
	eye := view.TransformPoint(c.Position())
	assert.InDelta(t, 0, eye.Length(), 1e-3)

	target := view.TransformPoint(math.Vec3{})
	assert.InDelta(t, 0, target.X, 1e-3)
	assert.InDelta(t, 0, target.Y, 1e-3)
	assert.InDelta(t, -c.Distance, target.Z, 1e-3)
}
