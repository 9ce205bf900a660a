// Package perception defines the tracked-point input boundary and its mapping into render space
package perception

import (
	"math"
)

// Point2D is a tracked point in normalized sensor space, origin top-left, [0,1] on both axes
type Point2D struct {
	X, Y float64
}

// Valid reports whether both coordinates are finite
func (p Point2D) Valid() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Eyes is the pair of tracked points that emit beams
type Eyes struct {
	Left, Right Point2D
}

// Valid reports whether both points are usable
func (e *Eyes) Valid() bool {
	return e != nil && e.Left.Valid() && e.Right.Valid()
}

// Points returns left then right
func (e *Eyes) Points() [2]Point2D {
	return [2]Point2D{e.Left, e.Right}
}

// Input is one frame of perception output
// Eyes is nil when no face is detected
type Input struct {
	Eyes     *Eyes
	IsFiring bool
}

// Present reports whether the input carries a usable firing signal
func (in Input) Present() bool {
	return in.IsFiring && in.Eyes.Valid()
}

// Source is pulled once per frame by the host
type Source interface {
	Next() Input
}
