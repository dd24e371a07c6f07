package rng

import (
	"math/rand"
	"sync"
)

// Seeded is a reproducible source for simulations
// It is safe for concurrent use.
type Seeded struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeded returns a source seeded with seed
func NewSeeded(seed int64) *Seeded {
	return &Seeded{
		rng: rand.New(rand.NewSource(seed)), // nolint:gosec
	}
}

// Intn returns a random number from 0 < n
func (s *Seeded) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rng.Intn(n)
}

// Float64 returns a random number in [0.0, 1.0)
func (s *Seeded) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rng.Float64()
}

// Fixed always returns the same fraction
type Fixed float64

// Float64 returns f
func (f Fixed) Float64() float64 {
	return float64(f)
}
