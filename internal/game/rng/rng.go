// Package rng provides the core randomness abstraction for the battle engine.
// Every chance-based mechanic (accuracy, critical hits, status rolls, damage
// spread) draws from a single injectable Source so that a battle is fully
// replayable when the source is fixed.
package rng

// Source is the randomness provider for the battle engine.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Chance draws from src and reports whether a numerator-in-denominator event
// occurred. Chance(src, 1, 16) is a 1/16 roll.
//
// Precondition: denominator > 0 and 0 <= numerator <= denominator.
func Chance(src Source, numerator, denominator int) bool {
	if denominator <= 0 || numerator < 0 || numerator > denominator {
		panic("rng: Chance called with invalid odds")
	}
	if numerator == 0 {
		return false
	}
	return src.Intn(denominator) < numerator
}

// Percent draws from src and reports whether a p-in-100 event occurred.
//
// Precondition: 0 <= p <= 100.
func Percent(src Source, p int) bool {
	return Chance(src, p, 100)
}

// Between returns a random int in [lo, hi] inclusive.
//
// Precondition: lo <= hi.
func Between(src Source, lo, hi int) int {
	if lo > hi {
		panic("rng: Between called with lo > hi")
	}
	return lo + src.Intn(hi-lo+1)
}
