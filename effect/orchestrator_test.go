package effect

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/eyebeam/audio"
	"github.com/lixenwraith/eyebeam/engine"
	"github.com/lixenwraith/eyebeam/gate"
	"github.com/lixenwraith/eyebeam/parameter"
	"github.com/lixenwraith/eyebeam/perception"
	"github.com/lixenwraith/eyebeam/vmath"
)

const frameDT = 16 * time.Millisecond

var viewport = perception.Viewport{Width: 800, Height: 600}

type harness struct {
	clock *engine.MockTimeProvider
	sched *engine.ManualScheduler
	synth *audio.Synthesizer
	orch  *Orchestrator
}

func newHarness(seed int64) *harness {
	clock := engine.NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	sched := engine.NewManualScheduler()
	rng := engine.NewRand(seed)
	synth := audio.NewSynthesizer(nil, sched, rng, nil)
	return &harness{
		clock: clock,
		sched: sched,
		synth: synth,
		orch:  NewOrchestrator(Options{Synth: synth, Rand: rng, Clock: clock}),
	}
}

// tick runs one frame at the current mock time then advances the clock
func (h *harness) tick(in perception.Input) Frame {
	f := h.orch.Tick(frameDT, in, viewport)
	h.clock.Advance(frameDT)
	return f
}

func centerEyes() *perception.Eyes {
	return &perception.Eyes{
		Left:  perception.Point2D{X: 0.5, Y: 0.5},
		Right: perception.Point2D{X: 0.5, Y: 0.5},
	}
}

func firing() perception.Input {
	return perception.Input{Eyes: centerEyes(), IsFiring: true}
}

func TestNoEyesNothingRendered(t *testing.T) {
	h := newHarness(1)
	in := perception.Input{Eyes: nil, IsFiring: true}

	for i := 0; i < 60; i++ {
		f := h.tick(in)
		if !f.Empty() {
			t.Fatalf("Frame %d: expected nothing rendered without eyes, got %d points %d beams %d sparks",
				i, len(f.Points), len(f.Beams), len(f.Sparks))
		}
		if f.Gate.State != gate.StateIdle {
			t.Fatalf("Frame %d: expected gate idle, got %s", i, f.Gate.State)
		}
	}
	if h.synth.Phase() != audio.PhaseIdle {
		t.Errorf("Expected synth idle, got %s", h.synth.Phase())
	}
}

func TestInvalidEyesTreatedAsAbsent(t *testing.T) {
	h := newHarness(1)
	in := perception.Input{
		Eyes: &perception.Eyes{
			Left:  perception.Point2D{X: math.NaN(), Y: 0.5},
			Right: perception.Point2D{X: 0.5, Y: 0.5},
		},
		IsFiring: true,
	}
	f := h.tick(in)
	if !f.Empty() || f.Gate.State != gate.StateIdle {
		t.Errorf("Expected invalid eyes to act as absent, got %+v", f)
	}
}

func TestHeldFiringScenario(t *testing.T) {
	h := newHarness(7)
	start := h.clock.Now()

	first := h.tick(firing())
	if len(first.Points) != 2 {
		t.Fatalf("Expected both points on the first frame, got %d", len(first.Points))
	}
	if len(first.Beams) != 0 || len(first.Sparks) != 0 {
		t.Fatal("Expected no beam or sparks before the gate opens")
	}
	if first.Gate.State != gate.StatePending {
		t.Errorf("Expected gate pending, got %s", first.Gate.State)
	}

	var (
		firstBeam  time.Duration
		lastLength float64
		sawSparks  bool
	)
	for h.clock.Now().Sub(start) < 600*time.Millisecond {
		elapsed := h.clock.Now().Sub(start)
		f := h.tick(firing())

		if len(f.Points) != 2 {
			t.Fatalf("At %v: expected points while firing, got %d", elapsed, len(f.Points))
		}
		if len(f.Beams) == 0 {
			if firstBeam != 0 {
				t.Fatalf("At %v: beam disappeared while held", elapsed)
			}
			if len(f.Sparks) != 0 {
				t.Fatalf("At %v: sparks without beam", elapsed)
			}
			continue
		}

		if firstBeam == 0 {
			firstBeam = elapsed
			if elapsed < parameter.GateActivationDelay {
				t.Fatalf("Beam appeared at %v, before the activation delay", elapsed)
			}
		}
		length := f.Beams[0].Length
		if length <= lastLength || length > parameter.BeamTargetLength {
			t.Fatalf("At %v: expected monotonic growth toward %v, got %v after %v",
				elapsed, parameter.BeamTargetLength, length, lastLength)
		}
		if f.Beams[0].Length != f.Beams[1].Length {
			t.Errorf("Expected both beams to grow together")
		}
		lastLength = length
		if len(f.Sparks) > 0 {
			sawSparks = true
		}
	}

	if firstBeam == 0 {
		t.Fatal("Expected beam within 600ms")
	}
	if firstBeam > parameter.GateActivationDelay+frameDT {
		t.Errorf("Expected beam within one frame of the delay, got %v", firstBeam)
	}
	if !sawSparks {
		t.Error("Expected sparks once the beam passed the impact threshold")
	}
	if h.synth.Phase() != audio.PhaseActive {
		t.Errorf("Expected synth active, got %s", h.synth.Phase())
	}
}

func TestPointsMapToRenderSpace(t *testing.T) {
	h := newHarness(1)
	eyes := &perception.Eyes{
		Left:  perception.Point2D{X: 0.4, Y: 0.5},
		Right: perception.Point2D{X: 0.6, Y: 0.5},
	}
	f := h.tick(perception.Input{Eyes: eyes, IsFiring: true})

	if len(f.Points) != 2 {
		t.Fatalf("Expected 2 points, got %d", len(f.Points))
	}
	if f.Points[0].Eye != EyeLeft || f.Points[1].Eye != EyeRight {
		t.Errorf("Expected left then right, got %s %s", f.Points[0].Eye, f.Points[1].Eye)
	}
	if got, want := f.Points[0].Position, perception.ToRender(eyes.Left, viewport); got != want {
		t.Errorf("Left point at %v, want %v", got, want)
	}
	if got, want := f.Points[1].Position, perception.ToRender(eyes.Right, viewport); got != want {
		t.Errorf("Right point at %v, want %v", got, want)
	}
	if f.Points[0].Opacity != parameter.PointOpacity || f.Points[0].Scale != parameter.PointScale {
		t.Errorf("Unexpected point material %+v", f.Points[0])
	}
}

func TestBeamImpactGeometry(t *testing.T) {
	h := newHarness(3)
	var f Frame
	for i := 0; i < 40; i++ {
		f = h.tick(firing())
	}
	if len(f.Beams) != 2 {
		t.Fatalf("Expected 2 beams, got %d", len(f.Beams))
	}
	b := f.Beams[0]
	if b.Direction.Z != -1 {
		t.Errorf("Expected beam along -Z, got %v", b.Direction)
	}
	if b.Impact.Z != -parameter.BeamImpactThreshold {
		t.Errorf("Expected impact at z=%v, got %v", -parameter.BeamImpactThreshold, b.Impact.Z)
	}
	if end := b.End(); end.Z != -b.Length {
		t.Errorf("Expected beam end at z=%v, got %v", -b.Length, end.Z)
	}
	for _, s := range f.Sparks {
		if s.Opacity <= 0 || s.Opacity > 1 {
			t.Errorf("Spark opacity out of range: %v", s.Opacity)
		}
	}
}

func TestShortPulseNeverOpens(t *testing.T) {
	h := newHarness(1)
	for i := 0; i < 19; i++ { // ~300ms
		if f := h.tick(firing()); len(f.Beams) != 0 {
			t.Fatal("Unexpected beam during short pulse")
		}
	}
	f := h.tick(perception.Input{Eyes: centerEyes()})
	if !f.Empty() || f.Gate.State != gate.StateIdle {
		t.Errorf("Expected idle and empty after release, got state %s", f.Gate.State)
	}
	if h.synth.Phase() != audio.PhaseIdle {
		t.Errorf("Expected synth never activated, got %s", h.synth.Phase())
	}
}

func TestGateCloseTearsDownAndRestartsFresh(t *testing.T) {
	h := newHarness(5)
	for i := 0; i < 60; i++ {
		h.tick(firing())
	}
	if h.orch.ActiveSparks() == 0 {
		t.Fatal("Expected sparks after ~1s of firing")
	}

	f := h.tick(perception.Input{Eyes: centerEyes()})
	if !f.Empty() {
		t.Fatal("Expected nothing drawn right after release")
	}
	if h.orch.ActiveSparks() != 0 {
		t.Errorf("Expected sparks cleared on close, %d live", h.orch.ActiveSparks())
	}
	if h.synth.Phase() != audio.PhaseReleasing {
		t.Errorf("Expected synth releasing, got %s", h.synth.Phase())
	}

	var first Frame
	for i := 0; i < 60; i++ {
		f := h.tick(firing())
		if len(f.Beams) > 0 {
			first = f
			break
		}
	}
	if len(first.Beams) == 0 {
		t.Fatal("Expected beam to reopen")
	}
	if first.Beams[0].Length >= parameter.BeamImpactThreshold {
		t.Errorf("Expected a fresh beam growing from zero, got length %v", first.Beams[0].Length)
	}
	if len(first.Sparks) != 0 {
		t.Errorf("Expected no sparks on the first frame of a fresh beam, got %d", len(first.Sparks))
	}
}

func TestAudioFollowsGate(t *testing.T) {
	h := newHarness(2)
	for i := 0; i < 40; i++ {
		h.tick(firing())
	}
	if h.synth.Phase() != audio.PhaseActive {
		t.Fatalf("Expected active, got %s", h.synth.Phase())
	}

	h.tick(perception.Input{})
	if h.synth.Phase() != audio.PhaseReleasing {
		t.Fatalf("Expected releasing, got %s", h.synth.Phase())
	}
	h.sched.Advance(parameter.AudioTeardownDelay)
	if h.synth.Phase() != audio.PhaseIdle {
		t.Errorf("Expected idle after teardown, got %s", h.synth.Phase())
	}
}

func TestHoldReleasesAudioUntilNextTick(t *testing.T) {
	h := newHarness(4)
	for i := 0; i < 40; i++ {
		h.tick(firing())
	}
	if !h.orch.gate.Gated() {
		t.Fatal("Expected gate open before hold")
	}

	h.orch.Hold()
	h.orch.Hold()
	if h.synth.Phase() != audio.PhaseReleasing {
		t.Fatalf("Expected releasing while held, got %s", h.synth.Phase())
	}
	if !h.orch.gate.Gated() {
		t.Error("Expected hold to leave the gate open")
	}
	h.sched.Advance(parameter.AudioTeardownDelay)
	if h.synth.Phase() != audio.PhaseIdle {
		t.Fatalf("Expected idle after teardown while held, got %s", h.synth.Phase())
	}

	f := h.tick(firing())
	if h.synth.Phase() != audio.PhaseActive || f.Audio != audio.PhaseActive {
		t.Errorf("Expected audio active again on resume, got %s", h.synth.Phase())
	}
	if len(f.Beams) != 2 {
		t.Errorf("Expected beams kept across hold, got %d", len(f.Beams))
	}

	h.orch.Close()
	h.orch.Hold()
	if h.synth.Phase() != audio.PhaseIdle {
		t.Errorf("Expected hold after close to be a no-op, got %s", h.synth.Phase())
	}
}

func TestLargeDeltaClamped(t *testing.T) {
	h := newHarness(9)
	for i := 0; i < 40; i++ {
		h.tick(firing())
	}

	f := h.orch.Tick(10*time.Second, firing(), viewport)
	if len(f.Beams) != 2 {
		t.Fatalf("Expected beams to survive a stalled frame, got %d", len(f.Beams))
	}
	if l := f.Beams[0].Length; l > parameter.BeamTargetLength || math.IsNaN(l) {
		t.Errorf("Expected bounded length, got %v", l)
	}
	for _, s := range f.Sparks {
		if s.Progress < 0 || s.Progress > 1 {
			t.Errorf("Spark progress out of range: %v", s.Progress)
		}
		if !vmath.V3FIsFinite(s.Position) {
			t.Errorf("Spark position not finite: %v", s.Position)
		}
	}

	f = h.orch.Tick(-time.Second, firing(), viewport)
	if len(f.Beams) != 2 {
		t.Error("Expected negative dt to be treated as zero")
	}
}

func TestSparksBoundedByPool(t *testing.T) {
	h := newHarness(11)
	for i := 0; i < 300; i++ {
		f := h.tick(firing())
		if len(f.Sparks) > 2*parameter.MaxParticles {
			t.Fatalf("Frame %d: %d sparks exceed both pools", i, len(f.Sparks))
		}
		perEye := [2]int{}
		for _, s := range f.Sparks {
			perEye[s.Eye]++
		}
		if perEye[0] > parameter.MaxParticles || perEye[1] > parameter.MaxParticles {
			t.Fatalf("Frame %d: pool overflow %v", i, perEye)
		}
	}
}

func TestSeededRunsReproduce(t *testing.T) {
	a, b := newHarness(42), newHarness(42)
	var fa, fb Frame
	for i := 0; i < 50; i++ {
		fa = a.tick(firing())
		fb = b.tick(firing())
	}
	if len(fa.Sparks) != len(fb.Sparks) {
		t.Fatalf("Expected equal spark counts, got %d and %d", len(fa.Sparks), len(fb.Sparks))
	}
	for i := range fa.Sparks {
		if fa.Sparks[i].Position != fb.Sparks[i].Position {
			t.Fatalf("Spark %d diverged: %v vs %v", i, fa.Sparks[i].Position, fb.Sparks[i].Position)
		}
	}
}

func TestCloseStopsEverything(t *testing.T) {
	h := newHarness(4)
	for i := 0; i < 40; i++ {
		h.tick(firing())
	}
	h.tick(perception.Input{})
	if h.sched.Pending() != 1 {
		t.Fatalf("Expected a pending teardown, got %d", h.sched.Pending())
	}

	h.orch.Close()
	if h.sched.Pending() != 0 {
		t.Errorf("Expected teardown cancelled by Close, %d pending", h.sched.Pending())
	}
	if h.synth.Phase() != audio.PhaseIdle {
		t.Errorf("Expected synth idle after Close, got %s", h.synth.Phase())
	}

	h.orch.Close()
	f := h.tick(firing())
	if !f.Empty() {
		t.Error("Expected closed orchestrator to draw nothing")
	}
	if f.Gate.State != gate.StateIdle {
		t.Errorf("Expected gate reset, got %s", f.Gate.State)
	}
}

func TestDefaultOptions(t *testing.T) {
	o := NewOrchestrator(Options{})
	f := o.Tick(frameDT, firing(), viewport)
	if len(f.Points) != 2 {
		t.Errorf("Expected points with default options, got %d", len(f.Points))
	}
	if f.Number != 1 {
		t.Errorf("Expected frame number 1, got %d", f.Number)
	}
	o.Close()
}

func TestEyeString(t *testing.T) {
	if EyeLeft.String() != "left" || EyeRight.String() != "right" {
		t.Error("Unexpected eye names")
	}
}
