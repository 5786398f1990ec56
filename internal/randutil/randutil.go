// Package randutil collects the small seeded-random helpers shared by
// genlib and statecheck. Keeping them in one place means every weighted
// choice in the core goes through the same rules for determinism.
package randutil

import (
	"math/rand"
	"sort"
)

// Int returns a pseudo-random integer in [lo, hi). Panics if hi <= lo,
// mirroring the fail-loudly discipline of the rest of the core.
func Int(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		panic("randutil: Int requires hi > lo")
	}
	return lo + r.Intn(hi-lo)
}

// Bool returns a pseudo-random boolean with even odds.
func Bool(r *rand.Rand) bool {
	return r.Intn(2) == 0
}

// WeightedIndex draws an index into weights proportional to its value.
// Weights must be non-negative and sum to at least 1.
func WeightedIndex(r *rand.Rand, weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		panic("randutil: WeightedIndex requires a positive total weight")
	}
	pick := r.Intn(total)
	for i, w := range weights {
		if pick < w {
			return i
		}
		pick -= w
	}
	return len(weights) - 1
}

// SortedKeys returns the keys of m in ascending order. Go's map iteration
// order is randomized per-process; anything the generator draws from a map
// is first stabilized through this so that replaying a seed replays the
// same draw.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
