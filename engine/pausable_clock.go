package engine

import (
	"sync"
	"time"
)

// PausableClock derives effect time from a source clock, freezing while paused
// Gate delays measured against it do not elapse during a pause
type PausableClock struct {
	mu sync.RWMutex

	source TimeProvider
	epoch  time.Time // Source time at creation

	paused          bool
	pauseStartTime  time.Time     // Source time when current pause started
	totalPausedTime time.Duration // Cumulative completed pause duration
}

// NewPausableClock creates a running clock over source, nil selects the monotonic provider
func NewPausableClock(source TimeProvider) *PausableClock {
	if source == nil {
		source = NewMonotonicTimeProvider()
	}
	return &PausableClock{
		source: source,
		epoch:  source.Now(),
	}
}

// Now returns current effect time (frozen while paused)
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	ref := pc.source.Now()
	if pc.paused {
		ref = pc.pauseStartTime
	}
	return pc.epoch.Add(ref.Sub(pc.epoch) - pc.totalPausedTime)
}

// Pause stops time advancement, no-op if already paused
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused {
		return
	}
	pc.paused = true
	pc.pauseStartTime = pc.source.Now()
}

// Resume continues time advancement, no-op if running
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.paused {
		return
	}
	pc.totalPausedTime += pc.source.Now().Sub(pc.pauseStartTime)
	pc.paused = false
	pc.pauseStartTime = time.Time{}
}

// Toggle flips pause state and returns true if now paused
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// TotalPauseDuration returns cumulative pause time including an ongoing pause
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.paused {
		total += pc.source.Now().Sub(pc.pauseStartTime)
	}
	return total
}
