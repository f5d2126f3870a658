// Package water provides the planar reflection geometry of the water surface.
package water

import (
	"math"

	lmath "github.com/Faultbox/lakeside/pkg/math"
)

// Up is the world up vector used to rebuild mirrored look-at matrices.
var Up = lmath.Vec3{X: 0, Y: 1, Z: 0}

// Reflect mirrors p about the horizontal plane y = height.
func Reflect(p lmath.Vec3, height float32) lmath.Vec3 {
	p.Y = 2*height - p.Y
	return p
}

// Mirror is the reflection camera for one frame.
type Mirror struct {
	Eye    lmath.Vec3
	Target lmath.Vec3
	View   lmath.Mat4
}

// MirrorCamera reflects eye and target about the water plane and re-derives
// the look-at view. The projection is reused from the main camera.
func MirrorCamera(eye, target lmath.Vec3, height float32) Mirror {
	e := Reflect(eye, height)
	t := Reflect(target, height)
	return Mirror{
		Eye:    e,
		Target: t,
		View:   lmath.LookAt(e, t, Up).Inverse(),
	}
}

// ClipPlane returns the plane (a, b, c, d) with ax+by+cz+d >= 0 above the
// water, used to discard submerged geometry in the reflection pass. offset
// lowers the plane slightly to hide seams at the shoreline.
func ClipPlane(height, offset float32) [4]float32 {
	return [4]float32{0, 1, 0, -(height - offset)}
}

// Phase returns the scroll phase in [0,1) of the water surface texture,
// completing one cycle every periodMs milliseconds.
func Phase(elapsedMs float64, periodMs float64) float32 {
	if periodMs <= 0 {
		return 0
	}
	return float32(math.Mod(elapsedMs, periodMs) / periodMs)
}
