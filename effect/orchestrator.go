// Package effect composes gate, beams, sparks and audio into one per-frame tick
package effect

import (
	"log/slog"
	"time"

	"github.com/lixenwraith/eyebeam/audio"
	"github.com/lixenwraith/eyebeam/beam"
	"github.com/lixenwraith/eyebeam/core"
	"github.com/lixenwraith/eyebeam/engine"
	"github.com/lixenwraith/eyebeam/gate"
	"github.com/lixenwraith/eyebeam/parameter"
	"github.com/lixenwraith/eyebeam/particle"
	"github.com/lixenwraith/eyebeam/perception"
	"github.com/lixenwraith/eyebeam/vmath"
)

var (
	// beamDirection points from the eye into the render surface
	beamDirection = vmath.Vec3F{X: 0, Y: 0, Z: -1}

	pointColor = core.RGB{R: 200, G: 255, B: 255}
	beamColor  = core.RGB{R: 255, G: 32, B: 24}
)

// Options configures an Orchestrator; zero fields get defaults
type Options struct {
	Synth  *audio.Synthesizer  // Nil creates a silent synthesizer
	Rand   engine.Rand         // Spark randomness, nil seeds from the clock
	Clock  engine.TimeProvider // Gate time source, nil uses the monotonic clock
	Delay  time.Duration       // Gate activation delay, 0 = default
	Logger *slog.Logger
}

// eyeEffect is the per-eye state that outlives a frame
// beam is nil while the gate is closed, sparks is allocated once
type eyeEffect struct {
	beam   *beam.Animator
	sparks *particle.System
}

// Orchestrator owns the shared gate, one beam and spark pool per eye, and the single synthesizer
// Tick is single-threaded; only the synthesizer's teardown runs on another goroutine
type Orchestrator struct {
	gate  *gate.Gate
	synth *audio.Synthesizer
	clock engine.TimeProvider
	log   *slog.Logger

	eyes   [2]eyeEffect
	frame  uint64
	closed bool
}

// NewOrchestrator creates an idle orchestrator
func NewOrchestrator(opts Options) *Orchestrator {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Clock == nil {
		opts.Clock = engine.NewMonotonicTimeProvider()
	}
	if opts.Rand == nil {
		opts.Rand = engine.NewRand(0)
	}
	if opts.Synth == nil {
		opts.Synth = audio.NewSynthesizer(nil, nil, opts.Rand, opts.Logger)
	}

	o := &Orchestrator{
		gate:  gate.New(opts.Delay),
		synth: opts.Synth,
		clock: opts.Clock,
		log:   opts.Logger.With("component", "effect"),
	}
	for i := range o.eyes {
		o.eyes[i].sparks = particle.NewSystem(opts.Rand)
	}
	return o
}

// Tick advances every component by dt and returns what to draw
// Absent or invalid eyes count as a released trigger
func (o *Orchestrator) Tick(dt time.Duration, in perception.Input, vp perception.Viewport) Frame {
	o.frame++
	if o.closed {
		return Frame{Number: o.frame, Gate: o.gate.Snapshot(), Audio: audio.PhaseIdle}
	}

	dt = min(max(dt, 0), parameter.MaxFrameDelta)
	seconds := dt.Seconds()

	raw := in.Present()
	switch o.gate.Update(raw, o.clock.Now()) {
	case gate.TransitionOpened:
		o.openBeams()
	case gate.TransitionClosed:
		o.closeBeams()
	}
	o.synth.Update(o.gate.Gated())

	f := Frame{
		Number: o.frame,
		Gate:   o.gate.Snapshot(),
		Audio:  o.synth.Phase(),
	}
	if !raw {
		return f
	}

	points := in.Eyes.Points()
	f.Points = make([]PointVisual, 0, len(points))
	for i, p := range points {
		f.Points = append(f.Points, PointVisual{
			Eye:      Eye(i),
			Position: perception.ToRender(p, vp),
			Scale:    parameter.PointScale,
			Color:    pointColor,
			Opacity:  parameter.PointOpacity,
		})
	}
	if !o.gate.Gated() {
		return f
	}

	f.Beams = make([]BeamVisual, 0, len(points))
	var sparks []particle.Visual
	for i := range o.eyes {
		fx := &o.eyes[i]
		origin := f.Points[i].Position
		length := fx.beam.Update(seconds)
		impact := vmath.V3FAdd(origin, vmath.V3FScale(beamDirection, parameter.BeamImpactThreshold))
		fx.sparks.Update(seconds, length, impact)

		f.Beams = append(f.Beams, BeamVisual{
			Eye:       Eye(i),
			Origin:    origin,
			Direction: beamDirection,
			Length:    length,
			Impact:    impact,
			Color:     beamColor,
		})

		sparks = fx.sparks.Visuals(sparks[:0])
		for _, v := range sparks {
			f.Sparks = append(f.Sparks, SparkVisual{Eye: Eye(i), Visual: v})
		}
	}
	return f
}

// openBeams starts fresh beams at zero length
func (o *Orchestrator) openBeams() {
	for i := range o.eyes {
		o.eyes[i].beam = beam.NewAnimator()
	}
	o.log.Debug("gate opened", "frame", o.frame)
}

// closeBeams discards beams and hides every spark
func (o *Orchestrator) closeBeams() {
	for i := range o.eyes {
		o.eyes[i].beam = nil
		o.eyes[i].sparks.Clear()
	}
	o.log.Debug("gate closed", "frame", o.frame)
}

// Hold releases the audio while the host freezes ticks, visuals stay as they are
// The next Tick with the gate still open starts a fresh bank
func (o *Orchestrator) Hold() {
	if o.closed {
		return
	}
	o.synth.Update(false)
}

// ActiveSparks returns the live particle count across both pools
func (o *Orchestrator) ActiveSparks() int {
	n := 0
	for i := range o.eyes {
		n += o.eyes[i].sparks.ActiveCount()
	}
	return n
}

// Close stops all audio synchronously, cancels pending teardown and resets the gate
// Later ticks draw nothing; repeated calls are no-ops
func (o *Orchestrator) Close() {
	if o.closed {
		return
	}
	o.closed = true
	o.gate.Reset()
	o.closeBeams()
	o.synth.Shutdown()
	o.log.Info("effect closed", "frames", o.frame)
}
