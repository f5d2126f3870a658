package shadow

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/lakeside/pkg/math"
)

// Projection is the symmetric perspective frustum the light renders through.
type Projection struct {
	FovY float32 // radians; wide enough to cover the scene
	Near float32
	Far  float32
}

// DefaultProjection covers the bundled scene from the default light distance.
func DefaultProjection() Projection {
	return Projection{FovY: math.DegToRad(120), Near: 1, Far: 200}
}

// Matrix returns the square perspective matrix.
func (p Projection) Matrix() math.Mat4 {
	return math.Perspective(p.FovY, 1, p.Near, p.Far)
}

// LightMatrices are the per-frame light-space transforms.
type LightMatrices struct {
	View       math.Mat4 // world to light space
	Projection math.Mat4
	Texture    math.Mat4 // world to shadow-map texture space, [0,1] on every axis
}

// biasMatrix maps clip space [-1,1] to texture space [0,1].
var biasMatrix = math.Translate(0.5, 0.5, 0.5).Mul(math.Scale(0.5, 0.5, 0.5))

// LightView returns the view matrix of a light at pos looking at target.
func LightView(pos, target math.Vec3) math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	dir := pos.Sub(target).Normalize()
	// Looking straight down the up axis degenerates the basis.
	if math32.Abs(dir.Y) > 0.99 {
		up = math.Vec3{X: 0, Y: 0, Z: 1}
	}
	return math.LookAt(pos, target, up).Inverse()
}

// TextureMatrix composes bias * projection * view.
func TextureMatrix(projection, view math.Mat4) math.Mat4 {
	return biasMatrix.Mul(projection).Mul(view)
}

// ComputeLight builds the light matrices for a light at pos aimed at target.
func ComputeLight(pos, target math.Vec3, proj Projection) LightMatrices {
	view := LightView(pos, target)
	p := proj.Matrix()
	return LightMatrices{
		View:       view,
		Projection: p,
		Texture:    TextureMatrix(p, view),
	}
}
