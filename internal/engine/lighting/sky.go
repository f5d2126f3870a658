// Package lighting drives the day/night cycle: the light angle, the sky
// colour it implies, and where the sun or moon sits.
package lighting

// Band edges of the cycle, in degrees.
const (
	dayStart   = 15  // end of sunrise
	duskStart  = 175 // day starts fading to night
	nightStart = 205
	dawnStart  = 345 // night starts fading to day, wrapping through 0
	fadeWidth  = 30
)

// Default sky palette, RGB in [0,1].
var (
	DefaultDayColor   = [3]float32{183.0 / 255, 210.0 / 255, 245.0 / 255}
	DefaultNightColor = [3]float32{22.0 / 255, 27.0 / 255, 47.0 / 255}
)

// nightFactor returns 0 for full day, 1 for full night, and a linear ramp in
// the dusk and dawn windows. angle must be in [0,360).
func nightFactor(angle float32) float32 {
	switch {
	case angle >= dayStart && angle < duskStart:
		return 0
	case angle >= duskStart && angle < nightStart:
		return (angle - duskStart) / fadeWidth
	case angle >= nightStart && angle < dawnStart:
		return 1
	default:
		// [345,360) and [0,15) form one window.
		shifted := angle - dawnStart
		if angle < dawnStart {
			shifted = angle + 360 - dawnStart
		}
		return 1 - shifted/fadeWidth
	}
}

// SkyColor interpolates between day and night per channel.
func SkyColor(angle float32, day, night [3]float32) [3]float32 {
	t := nightFactor(angle)
	switch t {
	case 0:
		return day
	case 1:
		return night
	}
	return [3]float32{
		day[0] + (night[0]-day[0])*t,
		day[1] + (night[1]-day[1])*t,
		day[2] + (night[2]-day[2])*t,
	}
}

// LightIntensity brightens the average sky channel by 0.4, capped at 1.
func LightIntensity(sky [3]float32) float32 {
	return min((sky[0]+sky[1]+sky[2])/3+0.4, 1)
}

// StarVisibility is the opacity of the star layer on the sky sphere.
func StarVisibility(angle float32) float32 {
	return nightFactor(angle)
}
