package audio

import (
	"math"
	"sort"
	"sync"
)

type eventKind int

const (
	eventSet eventKind = iota
	eventLinear
	eventExponential
)

type automationEvent struct {
	kind  eventKind
	value float64
	time  float64
}

// Automation is a Param timeline evaluated sample-accurately by the render goroutine
// Events already behind the render position are folded into the base value, so reads
// for times earlier than the last rendered sample return that folded value
type Automation struct {
	mu       sync.Mutex
	base     float64 // Value before the first pending event
	baseTime float64 // Time base took effect, start point of a leading ramp
	events   []automationEvent
}

// NewAutomation creates a parameter holding initial from time zero
func NewAutomation(initial float64) *Automation {
	return &Automation{base: initial}
}

func (a *Automation) ValueAt(t float64) float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.valueAt(t)
}

// Render fills out with values at t0, t0+step, ... and folds events behind the last sample
func (a *Automation) Render(t0, step float64, out []float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range out {
		out[i] = a.valueAt(t0 + float64(i)*step)
	}
	if len(out) > 0 {
		a.fold(t0 + float64(len(out)-1)*step)
	}
}

func (a *Automation) SetValueAt(v, t float64) {
	a.insert(automationEvent{kind: eventSet, value: v, time: t})
}

func (a *Automation) LinearRampToValueAt(v, t float64) {
	a.insert(automationEvent{kind: eventLinear, value: v, time: t})
}

func (a *Automation) ExponentialRampToValueAt(v, t float64) {
	a.insert(automationEvent{kind: eventExponential, value: v, time: t})
}

func (a *Automation) CancelScheduledValues(t float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	keep := a.events[:0]
	for _, e := range a.events {
		if e.time < t {
			keep = append(keep, e)
		}
	}
	a.events = keep
}

// Pending returns the number of events not yet folded
func (a *Automation) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.events)
}

// insert keeps events ordered by time, later inserts at equal time land after earlier ones
func (a *Automation) insert(e automationEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()

	i := sort.Search(len(a.events), func(i int) bool { return a.events[i].time > e.time })
	a.events = append(a.events, automationEvent{})
	copy(a.events[i+1:], a.events[i:])
	a.events[i] = e
}

// valueAt walks the timeline from base, caller holds mu
func (a *Automation) valueAt(t float64) float64 {
	prevValue, prevTime := a.base, a.baseTime

	for _, e := range a.events {
		if t < e.time {
			switch e.kind {
			case eventLinear:
				span := e.time - prevTime
				if span <= 0 {
					return e.value
				}
				return prevValue + (e.value-prevValue)*(t-prevTime)/span
			case eventExponential:
				span := e.time - prevTime
				if span <= 0 {
					return e.value
				}
				if prevValue <= 0 || e.value <= 0 {
					// Undefined exponential segment holds the start value
					return prevValue
				}
				return prevValue * math.Pow(e.value/prevValue, (t-prevTime)/span)
			default:
				return prevValue
			}
		}
		prevValue, prevTime = e.value, e.time
	}
	return prevValue
}

// fold absorbs events at or before t into base, caller holds mu
func (a *Automation) fold(t float64) {
	n := 0
	for n < len(a.events) && a.events[n].time <= t {
		a.base = a.events[n].value
		a.baseTime = a.events[n].time
		n++
	}
	if n > 0 {
		a.events = append(a.events[:0], a.events[n:]...)
	}
}
