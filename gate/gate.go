// Package gate debounces the raw firing trigger into a delayed activation signal
package gate

import (
	"time"

	"github.com/lixenwraith/eyebeam/parameter"
)

// State is the gate phase
type State int

const (
	StateIdle    State = iota // Raw trigger off
	StatePending              // Raw trigger on, waiting out the delay
	StateActive               // Delay elapsed with trigger held, gated=true
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// Transition reports an edge of the gated signal produced by one Update
type Transition int

const (
	TransitionNone    Transition = iota
	TransitionOpened             // gated false→true
	TransitionClosed             // gated true→false
)

// Snapshot is a read-only copy of gate state for consumers
type Snapshot struct {
	State        State
	Raw          bool
	Gated        bool
	PendingSince time.Time // Zero unless State == StatePending
}

// Gate converts a noisy boolean into a stable delayed firing signal
// No release delay: dropping the raw trigger closes the gate immediately
type Gate struct {
	delay        time.Duration
	state        State
	raw          bool
	pendingSince time.Time
}

// New creates an idle gate, delay <= 0 selects the default activation delay
func New(delay time.Duration) *Gate {
	if delay <= 0 {
		delay = parameter.GateActivationDelay
	}
	return &Gate{delay: delay}
}

// Update feeds the raw trigger observed at now and returns the gated edge, if any
func (g *Gate) Update(raw bool, now time.Time) Transition {
	g.raw = raw

	switch g.state {
	case StateIdle:
		if raw {
			g.state = StatePending
			g.pendingSince = now
		}
		return TransitionNone

	case StatePending:
		if !raw {
			g.state = StateIdle
			g.pendingSince = time.Time{}
			return TransitionNone
		}
		if now.Sub(g.pendingSince) >= g.delay {
			g.state = StateActive
			g.pendingSince = time.Time{}
			return TransitionOpened
		}
		return TransitionNone

	case StateActive:
		if !raw {
			g.state = StateIdle
			return TransitionClosed
		}
		return TransitionNone
	}
	return TransitionNone
}

// Reset returns the gate to idle, reporting TransitionClosed if it was open
func (g *Gate) Reset() Transition {
	wasActive := g.state == StateActive
	g.state = StateIdle
	g.raw = false
	g.pendingSince = time.Time{}
	if wasActive {
		return TransitionClosed
	}
	return TransitionNone
}

// State returns the current phase
func (g *Gate) State() State {
	return g.state
}

// Gated reports whether the gate is firing
func (g *Gate) Gated() bool {
	return g.state == StateActive
}

// Raw returns the last observed raw trigger
func (g *Gate) Raw() bool {
	return g.raw
}

// Snapshot returns a copy of the gate state
func (g *Gate) Snapshot() Snapshot {
	return Snapshot{
		State:        g.state,
		Raw:          g.raw,
		Gated:        g.state == StateActive,
		PendingSince: g.pendingSince,
	}
}
