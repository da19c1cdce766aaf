// Package random supplies the pseudo-random source used by the obstacle
// generator.
//
// Any correctly distributed generator satisfies Source. Rand is the seeded
// math/rand implementation used at runtime: the same seed always produces the
// same sequence, which is what makes obstacle layouts repeatable. Sequence
// replays scripted values and exists for tests that need a specific layout.
package random

import (
	"math/rand"
)

// Source is the capability the obstacle generator draws from.
type Source interface {
	// UniformBool returns true or false with equal probability.
	UniformBool() bool

	// UniformInt returns a uniform integer in [low, highExclusive).
	UniformInt(low, highExclusive int) int
}

// Rand is a Source backed by math/rand.
type Rand struct {
	seed int64
	rng  *rand.Rand
}

// New creates a source seeded with seed.
func New(seed int64) *Rand {
	return &Rand{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the source was created with.
func (r *Rand) Seed() int64 {
	return r.seed
}

// UniformBool implements Source.
func (r *Rand) UniformBool() bool {
	return r.rng.Intn(2) == 1
}

// UniformInt implements Source. An empty range returns low.
func (r *Rand) UniformInt(low, highExclusive int) int {
	if highExclusive <= low {
		return low
	}
	return low + r.rng.Intn(highExclusive-low)
}

// Sequence is a Source that replays fixed values in order, wrapping around
// when exhausted. Ints are clamped into the requested range.
type Sequence struct {
	Bools []bool
	Ints  []int

	bi, ii int
}

// UniformBool implements Source.
func (s *Sequence) UniformBool() bool {
	if len(s.Bools) == 0 {
		return false
	}
	v := s.Bools[s.bi%len(s.Bools)]
	s.bi++
	return v
}

// UniformInt implements Source.
func (s *Sequence) UniformInt(low, highExclusive int) int {
	if len(s.Ints) == 0 || highExclusive <= low {
		return low
	}
	v := s.Ints[s.ii%len(s.Ints)]
	s.ii++
	if v < low {
		return low
	}
	if v >= highExclusive {
		return highExclusive - 1
	}
	return v
}
