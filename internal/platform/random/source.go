package random

import (
	"math/rand/v2"
	"sync"
)

// Source is the single funnel for every stochastic decision in the
// simulation. Tests substitute a deterministic implementation.
type Source interface {
	// Float64 returns a uniform draw in [0,1).
	Float64() float64
	// IntN returns a uniform draw in [0,n). n must be positive.
	IntN(n int) int
}

// locked wraps a rand.Rand so concurrent fixture simulations can share one
// source safely.
type locked struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a Source seeded from the runtime's entropy.
func New() Source {
	return NewSeeded(rand.Uint64(), rand.Uint64())
}

// NewSeeded returns a reproducible Source for a given seed pair.
func NewSeeded(seed1, seed2 uint64) Source {
	return &locked{rnd: rand.New(rand.NewPCG(seed1, seed2))}
}

func (l *locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.Float64()
}

func (l *locked) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.IntN(n)
}

// Chance draws once and reports whether it fell under p.
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Float64() < p
}

// Between returns a uniform integer in [lo, hi] inclusive.
func Between(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.IntN(hi-lo+1)
}
