package perception

import (
	"time"

	"github.com/lixenwraith/eyebeam/engine"
	"github.com/lixenwraith/eyebeam/parameter"
)

// Step is one scripted input, in effect from At until the next step
type Step struct {
	At    time.Duration
	Input Input
}

// Script replays timed inputs against a clock
// The timeline starts on the first Next call; steps must be sorted by At
type Script struct {
	clock engine.TimeProvider
	steps []Step
	loop  bool
	span  time.Duration

	started bool
	start   time.Time
}

// NewScript creates a one-shot script, the last step holds forever
func NewScript(clock engine.TimeProvider, steps ...Step) *Script {
	if clock == nil {
		clock = engine.NewMonotonicTimeProvider()
	}
	return &Script{clock: clock, steps: steps}
}

// Loop restarts the script every span
func (s *Script) Loop(span time.Duration) *Script {
	s.loop = span > 0
	s.span = span
	return s
}

func (s *Script) Next() Input {
	now := s.clock.Now()
	if !s.started {
		s.started = true
		s.start = now
	}
	elapsed := now.Sub(s.start)
	if s.loop {
		elapsed %= s.span
	}

	var current Input
	for _, step := range s.steps {
		if step.At > elapsed {
			break
		}
		current = step.Input
	}
	return current
}

// Centered returns both eyes spread horizontally around (x, y)
func Centered(x, y float64) *Eyes {
	half := parameter.DemoEyeSpread / 2
	return &Eyes{
		Left:  Point2D{X: x - half, Y: y},
		Right: Point2D{X: x + half, Y: y},
	}
}

// DemoScript cycles through the effect lifecycle: no face, a short pulse
// that never opens the gate, a held beam, release and a fast re-fire
func DemoScript(clock engine.TimeProvider) *Script {
	eyes := Centered(0.5, 0.45)
	steps := []Step{
		{At: 0, Input: Input{}},
		{At: 1 * time.Second, Input: Input{Eyes: eyes}},
		{At: 2 * time.Second, Input: Input{Eyes: eyes, IsFiring: true}},
		{At: 2300 * time.Millisecond, Input: Input{Eyes: eyes}},
		{At: 3 * time.Second, Input: Input{Eyes: eyes, IsFiring: true}},
		{At: 6 * time.Second, Input: Input{Eyes: eyes}},
		{At: 6200 * time.Millisecond, Input: Input{Eyes: eyes, IsFiring: true}},
		{At: 8 * time.Second, Input: Input{Eyes: eyes}},
		{At: 9 * time.Second, Input: Input{IsFiring: true}},
	}
	return NewScript(clock, steps...).Loop(10 * time.Second)
}

// Manual is a Source driven by host input events
type Manual struct {
	eyes   *Eyes
	firing bool
}

// Move places both eyes around a normalized pointer position
func (m *Manual) Move(x, y float64) {
	m.eyes = Centered(x, y)
}

// Hide drops the tracked face
func (m *Manual) Hide() {
	m.eyes = nil
}

func (m *Manual) SetFiring(firing bool) {
	m.firing = firing
}

// ToggleFiring flips the firing signal and returns the new value
func (m *Manual) ToggleFiring() bool {
	m.firing = !m.firing
	return m.firing
}

func (m *Manual) Next() Input {
	if m.eyes == nil {
		return Input{IsFiring: m.firing}
	}
	eyes := *m.eyes
	return Input{Eyes: &eyes, IsFiring: m.firing}
}
