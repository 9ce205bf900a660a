// Package particle simulates spark debris in a fixed-capacity slot pool
package particle

import (
	"math"

	"github.com/lixenwraith/eyebeam/engine"
	"github.com/lixenwraith/eyebeam/parameter"
	"github.com/lixenwraith/eyebeam/vmath"
)

// Particle is one pool slot, Active is the sole liveness signal
// Invariant: 0 <= Life <= MaxLife
type Particle struct {
	Active   bool
	Life     float64 // Seconds remaining
	MaxLife  float64 // Seconds at spawn
	Position vmath.Vec3F
	Velocity vmath.Vec3F
}

// System owns MaxParticles slots allocated once, never resized
type System struct {
	slots  [parameter.MaxParticles]Particle
	active int
	rng    engine.Rand
}

// NewSystem creates an empty pool drawing spawn randomness from rng
func NewSystem(rng engine.Rand) *System {
	if rng == nil {
		rng = engine.NewRand(0)
	}
	return &System{rng: rng}
}

// Update advances one tick: integrates live particles, then spawns at impact
// if beamLength has reached the impact threshold (inclusive). Returns the number spawned
func (s *System) Update(dt, beamLength float64, impact vmath.Vec3F) int {
	s.Step(dt)
	if beamLength >= parameter.BeamImpactThreshold {
		return s.Spawn(parameter.SparkSpawnPerTick, impact)
	}
	return 0
}

// Spawn claims up to n inactive slots first-fit and initializes them at origin
// Returns the number actually spawned; requests beyond capacity are dropped
func (s *System) Spawn(n int, origin vmath.Vec3F) int {
	spawned := 0
	for i := range s.slots {
		if spawned >= n {
			break
		}
		if s.slots[i].Active {
			continue
		}
		s.init(&s.slots[i], origin)
		spawned++
	}
	s.active += spawned
	return spawned
}

// init seeds a claimed slot with life, jittered position and upward burst velocity
func (s *System) init(p *Particle, origin vmath.Vec3F) {
	life := vmath.RandRange(s.rng.Float64(), parameter.SparkLifeMin, parameter.SparkLifeMax)

	jx := vmath.RandRange(s.rng.Float64(), -parameter.SparkJitter, parameter.SparkJitter)
	jz := vmath.RandRange(s.rng.Float64(), -parameter.SparkJitter, parameter.SparkJitter)

	azimuth := s.rng.Float64() * 2 * math.Pi
	speed := vmath.RandRange(s.rng.Float64(), parameter.SparkRadialSpeedMin, parameter.SparkRadialSpeedMax)
	up := vmath.RandRange(s.rng.Float64(), parameter.SparkUpSpeedMin, parameter.SparkUpSpeedMax)

	*p = Particle{
		Active:   true,
		Life:     life,
		MaxLife:  life,
		Position: vmath.Vec3F{X: origin.X + jx, Y: origin.Y, Z: origin.Z + jz},
		Velocity: vmath.Vec3F{X: math.Cos(azimuth) * speed, Y: up, Z: math.Sin(azimuth) * speed},
	}
}

// Step ages and integrates active particles, killing those whose life runs out
func (s *System) Step(dt float64) {
	if dt <= 0 {
		return
	}
	for i := range s.slots {
		p := &s.slots[i]
		if !p.Active {
			continue
		}

		p.Life -= dt
		if p.Life <= 0 {
			p.Life = 0
			p.Active = false
			s.active--
			continue
		}

		p.Velocity.Y -= parameter.SparkGravity * dt
		p.Position = vmath.V3FAdd(p.Position, vmath.V3FScale(p.Velocity, dt))
	}
}

// Clear deactivates every slot
func (s *System) Clear() {
	for i := range s.slots {
		s.slots[i].Active = false
		s.slots[i].Life = 0
	}
	s.active = 0
}

// ActiveCount returns the number of live particles
func (s *System) ActiveCount() int {
	return s.active
}

// Capacity returns the fixed pool size
func (s *System) Capacity() int {
	return len(s.slots)
}

// Slot returns a copy of slot i
func (s *System) Slot(i int) Particle {
	return s.slots[i]
}

// Visuals appends render state for active particles only to dst
func (s *System) Visuals(dst []Visual) []Visual {
	for i := range s.slots {
		if s.slots[i].Active {
			dst = append(dst, VisualOf(s.slots[i]))
		}
	}
	return dst
}
