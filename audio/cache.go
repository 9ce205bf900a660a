package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/eyebeam/engine"
)

// noiseLoopDuration is the length of the looped noise buffer
const noiseLoopDuration = 2 * time.Second

// noiseCache stores one pre-generated white noise buffer shared by every noise node
type noiseCache struct {
	mu     sync.RWMutex
	format beep.Format
	seed   int64
	buf    *beep.Buffer
}

func newNoiseCache(rate beep.SampleRate, seed int64) *noiseCache {
	return &noiseCache{
		format: beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2},
		seed:   seed,
	}
}

// get returns the cached buffer or generates on demand
func (c *noiseCache) get() *beep.Buffer {
	c.mu.RLock()
	if c.buf != nil {
		buf := c.buf
		c.mu.RUnlock()
		return buf
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.buf != nil {
		return c.buf
	}

	buf := beep.NewBuffer(c.format)
	src := &noise{rng: engine.NewRand(c.seed)}
	buf.Append(beep.Take(c.format.SampleRate.N(noiseLoopDuration), src))
	c.buf = buf
	return buf
}

// loop returns a fresh endless streamer over the cached buffer
func (c *noiseCache) loop() beep.Streamer {
	buf := c.get()
	return beep.Loop(-1, buf.Streamer(0, buf.Len()))
}
