// Package randsrc provides the injectable random source used by every
// problem generator. Generators are otherwise pure functions of their
// inputs, so a fixed seed reproduces a whole session.
package randsrc

import (
	"math/rand/v2"
	"time"
)

// Source is a uniform integer/float generator.
type Source interface {
	// IntN returns a value in [0, n). n must be positive.
	IntN(n int) int
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
}

// New returns a deterministic Source for the given seed.
// A zero seed is replaced with the current time.
func New(seed uint64) Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Between returns a uniform value in [lo, hi]. If hi < lo it returns lo.
func Between(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.IntN(hi-lo+1)
}

// Pick returns a uniformly chosen element of items. items must be non-empty.
func Pick[T any](src Source, items []T) T {
	return items[src.IntN(len(items))]
}

// Chance reports true with probability p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}
