// Package beam animates a beam's visible length growing toward its full extent
package beam

import (
	"github.com/lixenwraith/eyebeam/parameter"
	"github.com/lixenwraith/eyebeam/vmath"
)

// Animator holds the growth state of one beam, created at zero length
// A torn-down beam is discarded, the next activation starts a fresh Animator
type Animator struct {
	currentLength float64
	target        float64
	rate          float64
}

// NewAnimator creates a beam at zero length growing toward the default target
func NewAnimator() *Animator {
	return &Animator{
		target: parameter.BeamTargetLength,
		rate:   parameter.BeamGrowthRate,
	}
}

// Update advances growth by dt seconds and returns the new length
// Uses a continuous time constant so the curve does not depend on frame rate
func (a *Animator) Update(dt float64) float64 {
	a.currentLength = vmath.Lerp(a.currentLength, a.target, vmath.ExpSmoothing(a.rate, dt))
	return a.currentLength
}

// Length returns the current length, consumed as the spark spawn test value
func (a *Animator) Length() float64 {
	return a.currentLength
}

// AtImpact reports whether the beam has reached the render surface
func (a *Animator) AtImpact() bool {
	return a.currentLength >= parameter.BeamImpactThreshold
}

// Target returns the length the beam grows toward
func (a *Animator) Target() float64 {
	return a.target
}
