package particle

import (
	"github.com/lixenwraith/eyebeam/core"
	"github.com/lixenwraith/eyebeam/parameter"
	"github.com/lixenwraith/eyebeam/vmath"
)

// Visual is the derived render state of a live particle
type Visual struct {
	Position    vmath.Vec3F
	Orientation vmath.Vec3F // Unit vector along velocity, long axis of the debris
	Progress    float64
	Hue         float64
	Lightness   float64
	Opacity     float64
	Color       core.RGB
}

// Progress returns normalized age 1 - life/maxLife in [0, 1]
func Progress(p Particle) float64 {
	if p.MaxLife <= 0 {
		return 1
	}
	return vmath.Clamp01(1 - p.Life/p.MaxLife)
}

// Hue shifts pale yellow to red, reaching red at two thirds of life
func Hue(progress float64) float64 {
	t := vmath.Clamp01(progress * parameter.SparkHueRate)
	return vmath.Lerp(parameter.SparkHueStart, parameter.SparkHueEnd, t)
}

// Lightness dims linearly over life
func Lightness(progress float64) float64 {
	return vmath.Lerp(parameter.SparkLightnessStart, parameter.SparkLightnessEnd, vmath.Clamp01(progress))
}

// Opacity is 1 - progress³, holding near full then dropping sharply at end of life
func Opacity(progress float64) float64 {
	p := vmath.Clamp01(progress)
	return 1 - p*p*p
}

// VisualOf derives render state from a particle
func VisualOf(p Particle) Visual {
	progress := Progress(p)
	hue := Hue(progress)
	light := Lightness(progress)
	return Visual{
		Position:    p.Position,
		Orientation: vmath.V3FNormalize(p.Velocity),
		Progress:    progress,
		Hue:         hue,
		Lightness:   light,
		Opacity:     Opacity(progress),
		Color:       core.HSL(hue, parameter.SparkSaturation, light),
	}
}
