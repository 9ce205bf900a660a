package audio

import (
	"errors"
	"sync"
)

// fakeNode counts Stop calls so tests can detect double stops
type fakeNode struct {
	kind  string
	freq  float64
	mu    sync.Mutex
	stops int
}

func (n *fakeNode) Stop() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stops++
	if n.stops > 1 {
		return ErrNodeStopped
	}
	return nil
}

func (n *fakeNode) stopCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stops
}

// fakeBackend is an in-memory Backend with a manually driven clock
type fakeBackend struct {
	mu       sync.Mutex
	now      float64
	master   *Automation
	nodes    []*fakeNode
	crackles []*Automation
	failOsc  int // Fail the Nth oscillator start (1-based), 0 = never
	oscCount int
	closed   int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{master: NewAutomation(0)}
}

func (b *fakeBackend) advance(dt float64) {
	b.mu.Lock()
	b.now += dt
	b.mu.Unlock()
}

func (b *fakeBackend) CurrentTime() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.now
}

func (b *fakeBackend) MasterGain() Param { return b.master }

func (b *fakeBackend) StartOscillator(wave Wave, freq, level float64) (Node, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.oscCount++
	if b.failOsc > 0 && b.oscCount == b.failOsc {
		return nil, errors.New("device lost")
	}
	n := &fakeNode{kind: wave.String(), freq: freq}
	b.nodes = append(b.nodes, n)
	return n, nil
}

func (b *fakeBackend) StartNoise(highpassHz float64) (Node, Param, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := &fakeNode{kind: "noise", freq: highpassHz}
	gain := NewAutomation(0)
	b.nodes = append(b.nodes, n)
	b.crackles = append(b.crackles, gain)
	return n, gain, nil
}

func (b *fakeBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed++
	return nil
}

// live returns nodes started and never stopped
func (b *fakeBackend) live() []*fakeNode {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []*fakeNode
	for _, n := range b.nodes {
		if n.stopCount() == 0 {
			out = append(out, n)
		}
	}
	return out
}

func (b *fakeBackend) maxStops() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	m := 0
	for _, n := range b.nodes {
		m = max(m, n.stopCount())
	}
	return m
}
