// Package dice provides the core randomness abstraction for the emblem
// combat engine. Every probabilistic check in the engine is a uniform
// percentile draw in [1,100] compared against a chance value.
package dice

// Source is the randomness provider for all combat rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Percentile draws a uniform integer in [1,100] from src.
//
// Precondition: src must be non-nil.
// Postcondition: 1 <= result <= 100.
func Percentile(src Source) int {
	return src.Intn(100) + 1
}

// Check draws a percentile and reports whether it is at or below chance.
// A chance <= 0 never succeeds; a chance >= 100 always succeeds, but a
// roll is still consumed either way so call sequences stay deterministic
// under a seeded source.
//
// Precondition: src must be non-nil.
// Postcondition: Returns true iff the drawn percentile <= chance.
func Check(src Source, chance int) bool {
	return Percentile(src) <= chance
}
