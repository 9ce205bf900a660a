package engine

import (
	"math/rand"
	"time"
)

// Rand is the random source consumed by spawn and crackle logic
// *rand.Rand satisfies it; tests inject a fixed seed to reproduce sequences
type Rand interface {
	Float64() float64
}

// NewRand returns a seeded source, seed 0 seeds from the clock
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// SeqRand replays a fixed sequence of draws, wrapping at the end
type SeqRand struct {
	Values []float64
	pos    int
}

func (r *SeqRand) Float64() float64 {
	if len(r.Values) == 0 {
		return 0
	}
	v := r.Values[r.pos%len(r.Values)]
	r.pos++
	return v
}
