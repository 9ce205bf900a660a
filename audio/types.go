package audio

import (
	"errors"
)

// Wave defines oscillator wave shapes
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
)

func (w Wave) String() string {
	switch w {
	case WaveSine:
		return "sine"
	case WaveSquare:
		return "square"
	case WaveSaw:
		return "saw"
	default:
		return "unknown"
	}
}

// Param is an automatable audio parameter, times are seconds on the backend clock
type Param interface {
	// ValueAt returns the automated value at t
	ValueAt(t float64) float64
	// SetValueAt steps to v at t
	SetValueAt(v, t float64)
	// LinearRampToValueAt ramps linearly from the previous event to v, arriving at t
	LinearRampToValueAt(v, t float64)
	// ExponentialRampToValueAt ramps exponentially from the previous event to v, arriving at t
	// v and the starting value must be positive
	ExponentialRampToValueAt(v, t float64)
	// CancelScheduledValues drops every event at or after t
	CancelScheduledValues(t float64)
}

// Node is a playing source in the backend graph
type Node interface {
	// Stop silences and detaches the node, returns ErrNodeStopped on repeated calls
	Stop() error
}

// Backend is the DSP graph the synthesizer orchestrates
// All methods are safe to call from the frame goroutine while the backend renders audio
type Backend interface {
	// CurrentTime is the backend clock in seconds, advancing with rendered samples
	CurrentTime() float64
	// MasterGain is the output gain applied after mixing
	MasterGain() Param
	// StartOscillator starts a periodic source at level (linear gain)
	StartOscillator(wave Wave, freq, level float64) (Node, error)
	// StartNoise starts a looping high-passed noise source behind its own gain stage, initially silent
	StartNoise(highpassHz float64) (Node, Param, error)
	// Close stops rendering and releases the output device
	Close() error
}

// Sentinel errors
var (
	ErrNoBackend       = errors.New("audio backend unavailable")
	ErrNodeStopped     = errors.New("audio node already stopped")
	ErrBackendClosed   = errors.New("audio backend closed")
	ErrInvalidFreq     = errors.New("oscillator frequency out of range")
	ErrInvalidHighpass = errors.New("high-pass cutoff out of range")
)
