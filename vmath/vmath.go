// Package vmath provides float vector math and smoothing helpers for the effect simulation
package vmath

import "math"

// Lerp linearly interpolates a→b, t is not clamped
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp restricts v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 restricts v to [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// ExpSmoothing returns the fraction of the remaining distance covered in dt seconds
// for a first-order exponential approach with the given rate (1/sec)
// Result is independent of how dt is subdivided: two steps of dt/2 cover the same distance as one of dt
func ExpSmoothing(rate, dt float64) float64 {
	if dt <= 0 || rate <= 0 {
		return 0
	}
	return 1 - math.Exp(-rate*dt)
}

// RandRange returns a uniform value in [lo, hi) from a unit draw u in [0, 1)
func RandRange(u, lo, hi float64) float64 {
	return lo + u*(hi-lo)
}
