package audio

import (
	"math"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/eyebeam/engine"
)

// mixBlock matches beep.Mixer's internal chunk, so each child Stream call
// covers exactly the block the clock is positioned at
const mixBlock = 512

// sampleClock counts rendered frames, the backend's CurrentTime source
type sampleClock struct {
	rate beep.SampleRate
	pos  atomic.Int64
}

func (c *sampleClock) Time() float64 {
	return float64(c.pos.Load()) / float64(c.rate)
}

func (c *sampleClock) advance(n int) {
	c.pos.Add(int64(n))
}

// newVolume applies a linear level to a stream
// math.Log2(0) is -Inf, so we handle 0 volume by making it silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// noise generates white noise from its own source, rendered on the audio goroutine only
type noise struct {
	rng engine.Rand
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := n.rng.Float64()*2 - 1
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (n *noise) Err() error { return nil }

// highpass is a one-pole RC high-pass filter
type highpass struct {
	streamer beep.Streamer
	alpha    float64
	prevIn   [2]float64
	prevOut  [2]float64
}

func newHighpass(s beep.Streamer, cutoff float64, rate beep.SampleRate) *highpass {
	rc := 1 / (2 * math.Pi * cutoff)
	dt := 1 / float64(rate)
	return &highpass{streamer: s, alpha: rc / (rc + dt)}
}

func (h *highpass) Stream(samples [][2]float64) (int, bool) {
	n, ok := h.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		for c := 0; c < 2; c++ {
			in := samples[i][c]
			out := h.alpha * (h.prevOut[c] + in - h.prevIn[c])
			h.prevIn[c] = in
			h.prevOut[c] = out
			samples[i][c] = out
		}
	}
	return n, ok
}

func (h *highpass) Err() error { return h.streamer.Err() }

// automatedGain multiplies a stream by an Automation evaluated at the clock position
type automatedGain struct {
	streamer beep.Streamer
	param    *Automation
	clock    *sampleClock
	gains    [mixBlock]float64
}

func (g *automatedGain) Stream(samples [][2]float64) (int, bool) {
	n, ok := g.streamer.Stream(samples)
	step := 1 / float64(g.clock.rate)
	t0 := g.clock.Time()
	for off := 0; off < n; off += mixBlock {
		end := min(off+mixBlock, n)
		gains := g.gains[:end-off]
		g.param.Render(t0+float64(off)*step, step, gains)
		for i, gain := range gains {
			samples[off+i][0] *= gain
			samples[off+i][1] *= gain
		}
	}
	return n, ok
}

func (g *automatedGain) Err() error { return g.streamer.Err() }
