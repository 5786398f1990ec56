// Package genlib is a minimal stand-in for the host PBT framework that
// statecheck is designed to be driven by. The real host, which owns
// seeding, size escalation, the outer such-that filter, and the
// shrink-replay loop, is out of scope for the core; this package
// implements just enough of that contract for statecheck's own tests and
// worked examples to exercise the generator and shrinker without
// statecheck depending on any particular PBT library.
package genlib

import (
	"fmt"
	"math/rand"

	"github.com/arrowcheck/statecheck/internal/randutil"
)

// Size is the generator's current size parameter and its ceiling, as used
// by the length-scaling computation S = floor(max-seq * size/max-size).
type Size struct {
	Value int
	Max   int
}

// Draw is the interface a command's args-generator and the core's own
// weighted choices use to consume randomness. It never exposes the
// underlying *rand.Rand so that every draw goes through the determinism
// rules in internal/randutil.
type Draw struct {
	r  *rand.Rand
	sz Size
}

// NewDraw wraps a seeded random source and a size for a single generation pass.
func NewDraw(r *rand.Rand, sz Size) Draw {
	return Draw{r: r, sz: sz}
}

// Size returns the size parameter in effect for this draw.
func (d Draw) Size() Size { return d.sz }

// Int draws an integer in [lo, hi).
func (d Draw) Int(lo, hi int) int { return randutil.Int(d.r, lo, hi) }

// Bool draws a fair boolean.
func (d Draw) Bool() bool { return randutil.Bool(d.r) }

// Choose draws an index into weights proportional to its value.
func (d Draw) Choose(weights []int) int { return randutil.WeightedIndex(d.r, weights) }

// ShrinkFunc is the incremental-shrink cursor a Generator hands back
// alongside its drawn value. acceptedPrev tells it whether the previously
// offered candidate is to be kept as the new baseline (true) or discarded
// (false); ok is false once the cursor has nothing smaller left to offer.
type ShrinkFunc[T any] func(acceptedPrev bool) (next T, ok bool)

// Generator draws a value of T from a seeded source at a given size,
// along with a cursor for shrinking it. This mirrors the
// gen.Generator[T] shape in the pack's only PBT-driver reference
// (lucaskalb/rapidx's prop.go), reduced to the two operations statecheck
// needs: draw, and shrink-on-demand.
type Generator[T any] func(r *rand.Rand, sz Size) (T, ShrinkFunc[T])

// Map adapts a Generator[A] into a Generator[B] via a pure function,
// carrying the shrink cursor through by re-applying f to each shrink.
func Map[A, B any](g Generator[A], f func(A) B) Generator[B] {
	return func(r *rand.Rand, sz Size) (B, ShrinkFunc[B]) {
		a, shrinkA := g(r, sz)
		var wrap func(sa ShrinkFunc[A]) ShrinkFunc[B]
		wrap = func(sa ShrinkFunc[A]) ShrinkFunc[B] {
			return func(accepted bool) (B, bool) {
				na, ok := sa(accepted)
				if !ok {
					var zero B
					return zero, false
				}
				return f(na), true
			}
		}
		return f(a), wrap(shrinkA)
	}
}

// ErrSuchThatExhausted is raised as a panic by SuchThat when a such-that
// filter could not find a passing value within its retry budget. Check does
// not recover it, so the panic reaches Check's caller. Exhaustion is surfaced by the host as-is;
// genlib is the host here, so it owns this type.
type ErrSuchThatExhausted struct {
	Retries int
}

func (e *ErrSuchThatExhausted) Error() string {
	return fmt.Sprintf("genlib: such-that filter exhausted its retry budget of %d", e.Retries)
}

// SuchThat filters g by pred, redrawing up to maxRetries times: a
// generator-level such-that with the retry budget standard to a host PBT
// library.
func SuchThat[T any](g Generator[T], pred func(T) bool, maxRetries int) Generator[T] {
	return func(r *rand.Rand, sz Size) (T, ShrinkFunc[T]) {
		for attempt := 0; attempt < maxRetries; attempt++ {
			v, shrink := g(r, sz)
			if pred(v) {
				return v, filterShrink(shrink, pred)
			}
		}
		panic(&ErrSuchThatExhausted{Retries: maxRetries})
	}
}

// filterShrink skips any shrink candidate that no longer satisfies pred,
// so a such-that generator never hands its caller an invalid shrink step.
func filterShrink[T any](shrink ShrinkFunc[T], pred func(T) bool) ShrinkFunc[T] {
	return func(accepted bool) (T, bool) {
		for {
			v, ok := shrink(accepted)
			if !ok {
				var zero T
				return zero, false
			}
			if pred(v) {
				return v, true
			}
			accepted = false
		}
	}
}

// Check runs body against `examples` values drawn from g at increasing
// size, seeded from seed. It returns the first value for which body
// returns false, along with the size at which it was found and ok=false,
// or ok=true if every example passed. This is the sized/seeded driver loop statecheck's
// own property tests use; it is deliberately a minimal echo of
// lucaskalb/rapidx's runSequential, without the shrink-replay loop (that
// loop belongs to the real host framework, not to this package).
func Check[T any](seed int64, examples int, maxSize int, g Generator[T], body func(T) bool) (failed T, atSize int, ok bool) {
	r := rand.New(rand.NewSource(seed))
	for i := 0; i < examples; i++ {
		sz := Size{Value: (i * maxSize) / examples, Max: maxSize}
		v, _ := g(r, sz)
		if !body(v) {
			return v, sz.Value, false
		}
	}
	var zero T
	return zero, 0, true
}
