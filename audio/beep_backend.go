package audio

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/eyebeam/parameter"
)

// Config holds beep backend settings
type Config struct {
	SampleRate int
	Buffer     time.Duration // Speaker latency
	Volume     float64       // Output scale after master gain, 0.0-1.0
	Seed       int64         // Noise buffer seed, 0 = time-seeded
}

// DefaultConfig returns the default backend settings
func DefaultConfig() Config {
	return Config{
		SampleRate: parameter.AudioSampleRate,
		Buffer:     parameter.AudioBufferDuration,
		Volume:     1.0,
	}
}

// BeepBackend renders the synthesizer graph with beep
// The graph is a beep.Mixer of Ctrl-wrapped sources; BeepBackend itself is the output
// streamer, applying master gain automation and counting samples for CurrentTime
type BeepBackend struct {
	config Config
	rate   beep.SampleRate
	clock  *sampleClock
	master *Automation
	cache  *noiseCache

	graphMu sync.Mutex // Guards mixer and node Ctrls against the render goroutine
	mixer   *beep.Mixer
	gains   [mixBlock]float64

	live      atomic.Int64
	speakerOn bool
	closed    atomic.Bool
}

// NewBeepBackend builds the graph without touching an output device
// Samples are pulled through Stream, by the speaker after Start or directly in tests
func NewBeepBackend(cfg Config) *BeepBackend {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = parameter.AudioSampleRate
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = parameter.AudioBufferDuration
	}
	rate := beep.SampleRate(cfg.SampleRate)
	return &BeepBackend{
		config: cfg,
		rate:   rate,
		clock:  &sampleClock{rate: rate},
		master: NewAutomation(0),
		cache:  newNoiseCache(rate, cfg.Seed),
		mixer:  &beep.Mixer{},
	}
}

// OpenSpeaker creates a backend and starts device playback
// Failure wraps ErrNoBackend; callers degrade to a silent synthesizer
func OpenSpeaker(cfg Config) (*BeepBackend, error) {
	b := NewBeepBackend(cfg)
	if err := b.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoBackend, err)
	}
	return b, nil
}

// Start initializes the speaker and begins playback of the graph
func (b *BeepBackend) Start() error {
	if b.closed.Load() {
		return ErrBackendClosed
	}
	if b.speakerOn {
		return fmt.Errorf("audio backend already running")
	}

	if err := speaker.Init(b.rate, b.rate.N(b.config.Buffer)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(b)
	b.speakerOn = true
	return nil
}

// Stream renders the mixed graph in mixer-sized blocks, keeping child automation aligned with the clock
func (b *BeepBackend) Stream(samples [][2]float64) (int, bool) {
	if b.closed.Load() {
		return 0, false
	}

	step := 1 / float64(b.rate)
	for off := 0; off < len(samples); off += mixBlock {
		block := samples[off:min(off+mixBlock, len(samples))]

		b.graphMu.Lock()
		n, _ := b.mixer.Stream(block)
		b.graphMu.Unlock()
		for i := n; i < len(block); i++ {
			block[i] = [2]float64{}
		}

		gains := b.gains[:len(block)]
		b.master.Render(b.clock.Time(), step, gains)
		for i := range block {
			g := gains[i] * b.config.Volume
			block[i][0] = clip(block[i][0] * g)
			block[i][1] = clip(block[i][1] * g)
		}
		b.clock.advance(len(block))
	}
	return len(samples), true
}

func (b *BeepBackend) Err() error { return nil }

func (b *BeepBackend) CurrentTime() float64 {
	return b.clock.Time()
}

func (b *BeepBackend) MasterGain() Param {
	return b.master
}

func (b *BeepBackend) StartOscillator(wave Wave, freq, level float64) (Node, error) {
	if b.closed.Load() {
		return nil, ErrBackendClosed
	}
	if freq <= 0 || freq >= float64(b.rate)/2 {
		return nil, fmt.Errorf("%w: %.1fHz", ErrInvalidFreq, freq)
	}

	var (
		tone beep.Streamer
		err  error
	)
	switch wave {
	case WaveSaw:
		tone, err = generators.SawtoothTone(b.rate, freq)
	case WaveSquare:
		tone, err = generators.SquareTone(b.rate, freq)
	default:
		tone, err = generators.SineTone(b.rate, freq)
	}
	if err != nil {
		return nil, fmt.Errorf("start %s oscillator: %w", wave, err)
	}
	return b.add(newVolume(tone, level)), nil
}

func (b *BeepBackend) StartNoise(highpassHz float64) (Node, Param, error) {
	if b.closed.Load() {
		return nil, nil, ErrBackendClosed
	}
	if highpassHz <= 0 || highpassHz >= float64(b.rate)/2 {
		return nil, nil, fmt.Errorf("%w: %.1fHz", ErrInvalidHighpass, highpassHz)
	}

	gain := NewAutomation(0)
	src := &automatedGain{
		streamer: newHighpass(b.cache.loop(), highpassHz, b.rate),
		param:    gain,
		clock:    b.clock,
	}
	return b.add(src), gain, nil
}

// add wraps s in a Ctrl and attaches it to the mixer
func (b *BeepBackend) add(s beep.Streamer) *beepNode {
	ctrl := &beep.Ctrl{Streamer: s}
	b.graphMu.Lock()
	b.mixer.Add(ctrl)
	b.graphMu.Unlock()
	b.live.Add(1)
	return &beepNode{backend: b, ctrl: ctrl}
}

// LiveNodes returns the number of started, not yet stopped nodes
func (b *BeepBackend) LiveNodes() int {
	return int(b.live.Load())
}

// Close detaches every node and releases the speaker, repeated calls are no-ops
func (b *BeepBackend) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}

	b.graphMu.Lock()
	b.mixer.Clear()
	b.graphMu.Unlock()
	b.live.Store(0)

	if b.speakerOn {
		speaker.Clear()
		speaker.Close()
		b.speakerOn = false
	}
	return nil
}

// beepNode stops by nilling its Ctrl's streamer, the mixer drops it on the next block
type beepNode struct {
	backend *BeepBackend
	ctrl    *beep.Ctrl
	stopped bool
}

func (n *beepNode) Stop() error {
	n.backend.graphMu.Lock()
	defer n.backend.graphMu.Unlock()

	if n.stopped {
		return ErrNodeStopped
	}
	n.stopped = true
	n.ctrl.Streamer = nil
	if !n.backend.closed.Load() {
		n.backend.live.Add(-1)
	}
	return nil
}

func clip(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
