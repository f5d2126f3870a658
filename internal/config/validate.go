package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate rejects settings the renderer cannot run with.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Graphics.Width > 0 && c.Graphics.Height > 0, "graphics size %dx%d", c.Graphics.Width, c.Graphics.Height)
	check(c.Scene.Model != "", "scene.model is empty")
	check(c.Cycle.LightDistance > 0, "cycle.light_distance must be positive")
	check(c.Camera.MinDistance > 0 && c.Camera.MinDistance <= c.Camera.MaxDistance,
		"camera distance range [%g, %g]", c.Camera.MinDistance, c.Camera.MaxDistance)
	check(c.Camera.MinPitch <= c.Camera.MaxPitch, "camera pitch range [%g, %g]", c.Camera.MinPitch, c.Camera.MaxPitch)
	check(c.Camera.Near > 0 && c.Camera.Near < c.Camera.Far, "camera near/far %g/%g", c.Camera.Near, c.Camera.Far)
	check(c.Camera.FovY > 0 && c.Camera.FovY < 180, "camera.fov_y %g", c.Camera.FovY)
	check(c.Shadow.Resolution > 0, "shadow.resolution must be positive")
	check(c.Shadow.Near > 0 && c.Shadow.Near < c.Shadow.Far, "shadow near/far %g/%g", c.Shadow.Near, c.Shadow.Far)
	check(c.Shadow.FovY > 0 && c.Shadow.FovY < 180, "shadow.fov_y %g", c.Shadow.FovY)
	check(c.Reflection.Width >= 0 && c.Reflection.Height >= 0, "reflection size %dx%d", c.Reflection.Width, c.Reflection.Height)
	check(c.Reflection.PeriodMs >= 0, "reflection.period_ms is negative")
	check(!c.Shaders.Watch || c.Shaders.Dir != "", "shaders.watch needs shaders.dir")

	return errors.Join(errs...)
}
