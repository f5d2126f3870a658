package lighting

import (
	"math"

	"github.com/chewxy/math32"

	lmath "github.com/Faultbox/lakeside/pkg/math"
)

// State is everything derived from the light angle for one frame.
type State struct {
	LightAngle     float32 // degrees in [0,360)
	SkyColor       [3]float32
	LightIntensity float32
	StarVisibility float32
	Light          Light
}

// Clock maps elapsed time to the light angle. It holds no mutable state:
// Advance is a pure function of its argument.
type Clock struct {
	BaseOffset    float32 // angle at time zero, degrees
	Rate          float32 // degrees per millisecond
	Day           [3]float32
	Night         [3]float32
	LightDistance float32
	LightTilt     float32 // z offset of the light orbit as a fraction of LightDistance
}

// DefaultClock starts at mid-morning and runs one cycle per minute.
func DefaultClock() Clock {
	return Clock{
		BaseOffset:    60,
		Rate:          0.006,
		Day:           DefaultDayColor,
		Night:         DefaultNightColor,
		LightDistance: 40,
		LightTilt:     0.3,
	}
}

// Angle returns (BaseOffset + elapsed*Rate) mod 360, in [0,360).
func (c Clock) Angle(elapsedMs float64) float32 {
	a := math.Mod(float64(c.BaseOffset)+elapsedMs*float64(c.Rate), 360)
	if a < 0 {
		a += 360
	}
	// Values just below 360 round up when narrowed.
	a32 := float32(a)
	if a32 >= 360 {
		a32 = 0
	}
	return a32
}

// Advance computes the frame state at elapsedMs since the cycle started.
func (c Clock) Advance(elapsedMs float64) State {
	angle := c.Angle(elapsedMs)
	sky := SkyColor(angle, c.Day, c.Night)
	return State{
		LightAngle:     angle,
		SkyColor:       sky,
		LightIntensity: LightIntensity(sky),
		StarVisibility: StarVisibility(angle),
		Light:          LightPosition(angle, c.LightDistance, c.LightTilt),
	}
}

// Light is the active directional-ish light: the sun by day, the moon by night.
type Light struct {
	Position lmath.Vec3
	Moon     bool
}

// LightPosition places the sun on a circle in the XY plane, rising at 0
// degrees and setting at 180, offset toward +Z by tilt. While the sun is
// below the horizon the moon, on the opposite side, takes over.
func LightPosition(angle, distance, tilt float32) Light {
	s, c := math32.Sincos(lmath.DegToRad(angle))
	moon := s < 0
	if moon {
		s, c = -s, -c
	}
	return Light{
		Position: lmath.Vec3{X: c * distance, Y: s * distance, Z: tilt * distance},
		Moon:     moon,
	}
}
