// Package camera provides the orbit camera the viewer is driven with.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/lakeside/pkg/math"
)

// Up is the fixed world up vector.
var Up = math.Vec3{X: 0, Y: 1, Z: 0}

// OrbitCamera orbits the world origin.
type OrbitCamera struct {
	// Spherical coordinates
	Distance float32
	Pitch    float32 // elevation above the XZ plane, radians
	Yaw      float32 // rotation around +Y, radians

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSpeed  float32 // radians turned by a drag across the whole viewport
	ZoomSpeed  float32 // fraction of distance per wheel step
	PinchSpeed float32 // fraction of distance per unit of normalized pinch

	// Projection
	FovY float32 // radians
	Near float32
	Far  float32
}

// NewOrbitCamera returns a camera looking down at the origin from the south.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:    30,
		Pitch:       0.35,
		Yaw:         0,
		MinDistance: 5,
		MaxDistance: 120,
		MinPitch:    0.05,
		MaxPitch:    1.5,
		DragSpeed:   math32.Pi,
		ZoomSpeed:   0.1,
		PinchSpeed:  2,
		FovY:        math.DegToRad(60),
		Near:        0.1,
		Far:         1000,
	}
}

// Position returns the eye position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sp, cp := math32.Sincos(c.Pitch)
	sy, cy := math32.Sincos(c.Yaw)
	return math.Vec3{
		X: c.Distance * cp * sy,
		Y: c.Distance * sp,
		Z: c.Distance * cp * cy,
	}
}

// Target is the point the camera looks at.
func (c *OrbitCamera) Target() math.Vec3 {
	return math.Vec3{}
}

// CameraMatrix maps camera space to world space.
func (c *OrbitCamera) CameraMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target(), Up)
}

// ViewMatrix maps world space to camera space.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return c.CameraMatrix().Inverse()
}

// Projection returns the perspective matrix for the given aspect ratio.
func (c *OrbitCamera) Projection(aspect float32) math.Mat4 {
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// HandleDrag applies a pointer drag of (dx, dy) pixels in a viewport of
// width x height pixels.
func (c *OrbitCamera) HandleDrag(dx, dy float32, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Yaw -= dx / float32(width) * c.DragSpeed
	c.Pitch += dy / float32(height) * c.DragSpeed
	c.Yaw = math32.Mod(c.Yaw, 2*math32.Pi)
	c.Clamp()
}

// HandleZoom applies wheel steps; positive moves closer.
func (c *OrbitCamera) HandleZoom(steps float32) {
	c.Distance -= steps * c.Distance * c.ZoomSpeed
	c.Clamp()
}

// HandlePinch applies a change in normalized finger spread; positive
// (fingers moving apart) moves closer.
func (c *OrbitCamera) HandlePinch(delta float32) {
	c.Distance -= delta * c.Distance * c.PinchSpeed
	c.Clamp()
}

// Clamp brings pitch and distance back inside their limits.
func (c *OrbitCamera) Clamp() {
	c.Pitch = min(max(c.Pitch, c.MinPitch), c.MaxPitch)
	c.Distance = min(max(c.Distance, c.MinDistance), c.MaxDistance)
}
