package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/lakeside/internal/config"
	"github.com/Faultbox/lakeside/internal/engine/lighting"
	"github.com/Faultbox/lakeside/internal/engine/model"
	"github.com/Faultbox/lakeside/internal/engine/scene"
	"github.com/Faultbox/lakeside/internal/engine/texture"
	"github.com/Faultbox/lakeside/pkg/math"
)

func TestDefaultsMatchPackageDefaults(t *testing.T) {
	cfg := config.Default()

	clock := clockFrom(cfg)
	want := lighting.DefaultClock()
	assert.Equal(t, want.BaseOffset, clock.BaseOffset)
	assert.Equal(t, want.Rate, clock.Rate)
	for i := range 3 {
		assert.InDelta(t, want.Day[i], clock.Day[i], 1e-6)
		assert.InDelta(t, want.Night[i], clock.Night[i], 1e-6)
	}

	pc := plannerConfig(cfg)
	def := scene.DefaultConfig()
	assert.Equal(t, def.ShadowResolution, pc.ShadowResolution)
	assert.Equal(t, def.ShadowBias, pc.ShadowBias)
	assert.InDelta(t, def.ShadowProjection.FovY, pc.ShadowProjection.FovY, 1e-6)
	assert.Equal(t, def.Reflection, pc.Reflection)
	assert.Equal(t, def.ReflectionWidth, pc.ReflectionWidth)
	assert.Nil(t, pc.WaterHeight)

	assert.Equal(t, model.DefaultOptions(), modelOptions(cfg))
}

func TestCameraFrom(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.FovY = 90
	cfg.Camera.Distance = 500 // beyond MaxDistance

	cam := cameraFrom(cfg)
	assert.InDelta(t, math.DegToRad(90), cam.FovY, 1e-6)
	assert.Equal(t, cfg.Camera.MaxDistance, cam.Distance)
}

func TestRGB(t *testing.T) {
	assert.Equal(t, [3]float32{0, 1, 0}, rgb([3]uint8{0, 255, 0}))
}

func TestWindowTitle(t *testing.T) {
	assert.Equal(t, "Lakeside", windowTitle(texture.Idle, 60, false))
	assert.Equal(t, "Lakeside: loading textures", windowTitle(texture.Loading, 0, true))
	assert.Equal(t, "Lakeside: loading textures (58 fps)", windowTitle(texture.Loading, 58, true))
}
