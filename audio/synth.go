package audio

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/lixenwraith/eyebeam/engine"
	"github.com/lixenwraith/eyebeam/parameter"
)

// Phase is the envelope state of the synthesizer
type Phase int

const (
	PhaseIdle      Phase = iota // No nodes
	PhaseActive                 // Attack then sustain, crackle running
	PhaseReleasing              // Gain decaying, teardown scheduled
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseReleasing:
		return "releasing"
	default:
		return "unknown"
	}
}

// bank is one generation of live nodes
type bank struct {
	oscillators []Node
	noise       Node
	crackle     Param
}

// Synthesizer drives the beam sound from the gated signal
// A nil backend makes it a no-op: phases still advance, nothing is heard
//
// Update runs on the frame goroutine; the teardown callback runs on the scheduler's.
// mu serializes them, and the generation counter invalidates teardowns scheduled
// before a reactivation
type Synthesizer struct {
	mu sync.Mutex

	backend Backend
	sched   engine.Scheduler
	rng     engine.Rand
	log     *slog.Logger

	phase        Phase
	bank         *bank
	generation   uint64
	teardown     engine.Task
	masterTarget float64
	lastCrackle  float64
	closed       bool
}

// NewSynthesizer creates an idle synthesizer; backend may be nil
func NewSynthesizer(backend Backend, sched engine.Scheduler, rng engine.Rand, logger *slog.Logger) *Synthesizer {
	if sched == nil {
		sched = engine.NewTimerScheduler()
	}
	if rng == nil {
		rng = engine.NewRand(0)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if backend == nil {
		logger.Warn("audio backend unavailable, synthesizer is silent")
	}
	return &Synthesizer{
		backend: backend,
		sched:   sched,
		rng:     rng,
		log:     logger.With("component", "synth"),
	}
}

// Update feeds the gated signal once per frame
func (s *Synthesizer) Update(gated bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	switch {
	case gated && s.phase != PhaseActive:
		s.activate()
	case !gated && s.phase == PhaseActive:
		s.release()
	case gated:
		s.crackle()
	}
}

// activate starts a fresh bank and ramps master gain up, caller holds mu
func (s *Synthesizer) activate() {
	s.generation++
	if s.teardown != nil {
		s.teardown.Cancel()
		s.teardown = nil
	}
	// Reactivation during release: the old bank is stopped now, never by the stale teardown
	if s.bank != nil {
		s.stopBank(s.bank)
		s.bank = nil
	}

	s.phase = PhaseActive
	s.masterTarget = parameter.AudioPeakGain
	s.lastCrackle = 0
	s.log.Debug("phase change", "phase", s.phase, "generation", s.generation)

	if s.backend == nil {
		return
	}

	b, err := s.startBank()
	if err != nil {
		s.log.Warn("oscillator bank start failed", "error", err)
		return
	}
	s.bank = b

	now := s.backend.CurrentTime()
	master := s.backend.MasterGain()
	current := master.ValueAt(now)
	master.CancelScheduledValues(now)
	master.SetValueAt(current, now)
	master.LinearRampToValueAt(parameter.AudioPeakGain, now+parameter.AudioAttack.Seconds())
}

// release ramps master gain toward the floor and schedules teardown, caller holds mu
func (s *Synthesizer) release() {
	s.phase = PhaseReleasing
	s.masterTarget = parameter.AudioReleaseFloor
	s.lastCrackle = 0
	s.log.Debug("phase change", "phase", s.phase, "generation", s.generation)

	if s.backend != nil {
		now := s.backend.CurrentTime()
		master := s.backend.MasterGain()
		current := master.ValueAt(now)
		master.CancelScheduledValues(now)
		// Exponential ramps need a positive start
		master.SetValueAt(max(current, parameter.AudioReleaseFloor), now)
		master.ExponentialRampToValueAt(parameter.AudioReleaseFloor, now+parameter.AudioRelease.Seconds())

		// Silence any pop left on the noise layer
		if s.bank != nil && s.bank.crackle != nil {
			s.bank.crackle.CancelScheduledValues(now)
			s.bank.crackle.SetValueAt(0, now)
		}
	}

	gen := s.generation
	s.teardown = s.sched.AfterFunc(parameter.AudioTeardownDelay, func() {
		s.finishRelease(gen)
	})
}

// finishRelease is the delayed teardown, a no-op if a reactivation or shutdown superseded it
func (s *Synthesizer) finishRelease(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || gen != s.generation || s.phase != PhaseReleasing {
		return
	}
	if s.bank != nil {
		s.stopBank(s.bank)
		s.bank = nil
	}
	s.teardown = nil
	s.phase = PhaseIdle
	s.log.Debug("phase change", "phase", s.phase, "generation", s.generation)
}

// crackle sets the noise gain instantly, either a random pop or silence, caller holds mu
func (s *Synthesizer) crackle() {
	if s.bank == nil || s.bank.crackle == nil {
		return
	}

	v := 0.0
	if s.rng.Float64() < parameter.AudioCrackleChance {
		v = s.rng.Float64() * parameter.AudioCrackleMax
	}
	s.lastCrackle = v
	s.bank.crackle.SetValueAt(v, s.backend.CurrentTime())
}

// startBank creates the detuned saw pair, square harmonic and noise layer
// On partial failure the nodes already started are stopped
func (s *Synthesizer) startBank() (*bank, error) {
	b := &bank{}

	voices := []struct {
		wave  Wave
		freq  float64
		level float64
	}{
		{WaveSaw, parameter.AudioSawLowFreq, parameter.AudioSawLevel},
		{WaveSaw, parameter.AudioSawHighFreq, parameter.AudioSawLevel},
		{WaveSquare, parameter.AudioSquareFreq, parameter.AudioSquareLevel},
	}
	for _, v := range voices {
		node, err := s.backend.StartOscillator(v.wave, v.freq, v.level)
		if err != nil {
			s.stopBank(b)
			return nil, err
		}
		b.oscillators = append(b.oscillators, node)
	}

	noise, gain, err := s.backend.StartNoise(parameter.AudioNoiseHighpass)
	if err != nil {
		s.stopBank(b)
		return nil, err
	}
	b.noise = noise
	b.crackle = gain
	return b, nil
}

// stopBank stops every node once; already-stopped nodes are expected after races and ignored
func (s *Synthesizer) stopBank(b *bank) {
	stop := func(n Node) {
		if n == nil {
			return
		}
		if err := n.Stop(); err != nil {
			if errors.Is(err, ErrNodeStopped) {
				s.log.Debug("node already stopped")
				return
			}
			s.log.Warn("node stop failed", "error", err)
		}
	}
	for _, n := range b.oscillators {
		stop(n)
	}
	stop(b.noise)
	b.oscillators = nil
	b.noise = nil
	b.crackle = nil
}

// Shutdown synchronously stops all nodes, cancels pending teardown and closes the backend
// Later calls to Update are ignored
func (s *Synthesizer) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.generation++

	if s.teardown != nil {
		s.teardown.Cancel()
		s.teardown = nil
	}
	if s.bank != nil {
		s.stopBank(s.bank)
		s.bank = nil
	}
	s.phase = PhaseIdle

	if s.backend != nil {
		if err := s.backend.Close(); err != nil {
			s.log.Warn("audio backend close failed", "error", err)
		}
	}
}

// Phase returns the envelope phase
func (s *Synthesizer) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// MasterTarget returns the gain the current ramp is heading to
func (s *Synthesizer) MasterTarget() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.masterTarget
}

// Crackle returns the crackle gain set on the latest tick
func (s *Synthesizer) Crackle() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCrackle
}

// Silent reports whether the synthesizer has no backend
func (s *Synthesizer) Silent() bool {
	return s.backend == nil
}
