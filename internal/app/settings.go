package app

import (
	"strconv"

	"github.com/Faultbox/lakeside/internal/config"
	"github.com/Faultbox/lakeside/internal/engine/camera"
	"github.com/Faultbox/lakeside/internal/engine/lighting"
	"github.com/Faultbox/lakeside/internal/engine/model"
	"github.com/Faultbox/lakeside/internal/engine/scene"
	"github.com/Faultbox/lakeside/internal/engine/shadow"
	"github.com/Faultbox/lakeside/internal/engine/texture"
	"github.com/Faultbox/lakeside/pkg/math"
)

func rgb(c [3]uint8) [3]float32 {
	return [3]float32{float32(c[0]) / 255, float32(c[1]) / 255, float32(c[2]) / 255}
}

func clockFrom(cfg *config.Config) lighting.Clock {
	return lighting.Clock{
		BaseOffset:    cfg.Cycle.BaseOffset,
		Rate:          cfg.Cycle.Rate,
		Day:           rgb(cfg.Sky.Day),
		Night:         rgb(cfg.Sky.Night),
		LightDistance: cfg.Cycle.LightDistance,
		LightTilt:     cfg.Cycle.LightTilt,
	}
}

func cameraFrom(cfg *config.Config) *camera.OrbitCamera {
	c := cfg.Camera
	cam := camera.NewOrbitCamera()
	cam.Distance = c.Distance
	cam.Pitch = c.Pitch
	cam.MinDistance, cam.MaxDistance = c.MinDistance, c.MaxDistance
	cam.MinPitch, cam.MaxPitch = c.MinPitch, c.MaxPitch
	cam.DragSpeed = c.DragSpeed
	cam.ZoomSpeed = c.ZoomSpeed
	cam.PinchSpeed = c.PinchSpeed
	cam.FovY = math.DegToRad(c.FovY)
	cam.Near, cam.Far = c.Near, c.Far
	cam.Clamp()
	return cam
}

func plannerConfig(cfg *config.Config) scene.Config {
	return scene.Config{
		ShadowResolution: cfg.Shadow.Resolution,
		ShadowBias:       cfg.Shadow.Bias,
		ShadowProjection: shadow.Projection{
			FovY: math.DegToRad(cfg.Shadow.FovY),
			Near: cfg.Shadow.Near,
			Far:  cfg.Shadow.Far,
		},
		Reflection:       cfg.Reflection.Enabled,
		ReflectionWidth:  cfg.Reflection.Width,
		ReflectionHeight: cfg.Reflection.Height,
		ClipOffset:       cfg.Reflection.ClipOffset,
		WaterHeight:      cfg.Reflection.WaterHeight,
		WaterPeriodMs:    cfg.Reflection.PeriodMs,
	}
}

func modelOptions(cfg *config.Config) model.Options {
	return model.Options{
		SkyObject:     cfg.Scene.SkyObject,
		WaterObject:   cfg.Scene.WaterObject,
		WaterMaterial: cfg.Scene.WaterMaterial,
		DoubleSided:   cfg.Scene.DoubleSided,
		NoShadow:      cfg.Scene.NoShadow,
	}
}

func textureOptions(cfg *config.Config) texture.Options {
	return texture.Options{
		MaxConcurrent: cfg.Textures.MaxConcurrent,
		Mipmaps:       cfg.Textures.Mipmaps,
	}
}

const appName = "Lakeside"

// windowTitle shows the loading state and, when enabled, the frame rate.
func windowTitle(status texture.Status, fps int, showFPS bool) string {
	title := appName
	if status == texture.Loading {
		title += ": loading textures"
	}
	if showFPS && fps > 0 {
		title += " (" + strconv.Itoa(fps) + " fps)"
	}
	return title
}
