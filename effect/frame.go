package effect

import (
	"github.com/lixenwraith/eyebeam/audio"
	"github.com/lixenwraith/eyebeam/core"
	"github.com/lixenwraith/eyebeam/gate"
	"github.com/lixenwraith/eyebeam/particle"
	"github.com/lixenwraith/eyebeam/vmath"
)

// Eye indexes the tracked point a visual belongs to
type Eye int

const (
	EyeLeft Eye = iota
	EyeRight
)

func (e Eye) String() string {
	if e == EyeLeft {
		return "left"
	}
	return "right"
}

// PointVisual is the static marker shown while the raw trigger is held
type PointVisual struct {
	Eye      Eye
	Position vmath.Vec3F
	Scale    float64
	Color    core.RGB
	Opacity  float64
}

// BeamVisual spans Origin to Origin + Direction*Length
type BeamVisual struct {
	Eye       Eye
	Origin    vmath.Vec3F
	Direction vmath.Vec3F
	Length    float64
	Impact    vmath.Vec3F // Spark anchor on the render surface
	Color     core.RGB
}

// End returns the beam tip
func (b BeamVisual) End() vmath.Vec3F {
	return vmath.V3FAdd(b.Origin, vmath.V3FScale(b.Direction, b.Length))
}

// SparkVisual is one live particle of an eye's spark pool
type SparkVisual struct {
	Eye Eye
	particle.Visual
}

// Frame is the command set produced by one tick, consumed by the renderer
// Slices are owned by the caller after Tick returns
type Frame struct {
	Number uint64
	Points []PointVisual
	Beams  []BeamVisual
	Sparks []SparkVisual
	Gate   gate.Snapshot
	Audio  audio.Phase
}

// Empty reports whether the frame draws nothing
func (f *Frame) Empty() bool {
	return len(f.Points) == 0 && len(f.Beams) == 0 && len(f.Sparks) == 0
}
