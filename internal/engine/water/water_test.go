package water

import (
	"testing"

	"github.com/stretchr/testify/assert"

	lmath "github.com/Faultbox/lakeside/pkg/math"
)

func TestReflect(t *testing.T) {
	p := Reflect(lmath.Vec3{X: 1, Y: 5, Z: -2}, 1)
	assert.Equal(t, lmath.Vec3{X: 1, Y: -3, Z: -2}, p)

	// Reflecting twice is the identity.
	assert.Equal(t, lmath.Vec3{X: 1, Y: 5, Z: -2}, Reflect(p, 1))
}

func TestMirrorCamera(t *testing.T) {
	eye := lmath.Vec3{X: 0, Y: 10, Z: 20}
	target := lmath.Vec3{}
	m := MirrorCamera(eye, target, 2)

	assert.Equal(t, lmath.Vec3{X: 0, Y: -6, Z: 20}, m.Eye)
	assert.Equal(t, lmath.Vec3{X: 0, Y: 4, Z: 0}, m.Target)

	// The mirrored eye maps to the view origin and the mirrored target lies
	// straight ahead.
	o := m.View.TransformPoint(m.Eye)
	assert.InDelta(t, 0, o.Length(), 1e-4)
	ahead := m.View.TransformPoint(m.Target)
	assert.InDelta(t, 0, ahead.X, 1e-4)
	assert.InDelta(t, 0, ahead.Y, 1e-4)
	assert.InDelta(t, -m.Eye.Distance(m.Target), ahead.Z, 1e-4)
}

func TestClipPlane(t *testing.T) {
	p := ClipPlane(3, 0)
	above := p[1]*4 + p[3]
	below := p[1]*2 + p[3]
	assert.Greater(t, above, float32(0))
	assert.Less(t, below, float32(0))
}

func TestClipPlane_OffsetLowersCut(t *testing.T) {
	p := ClipPlane(3, 0.5)
	assert.Greater(t, p[1]*2.75+p[3], float32(0))
	assert.InDelta(t, 0, p[1]*2.5+p[3], 1e-6)
	assert.Less(t, p[1]*2.25+p[3], float32(0))
}

func TestPhase(t *testing.T) {
	assert.InDelta(t, 0.25, Phase(2500, 10000), 1e-6)
	assert.InDelta(t, 0.25, Phase(12500, 10000), 1e-6)
	assert.Equal(t, float32(0), Phase(100, 0))
}
