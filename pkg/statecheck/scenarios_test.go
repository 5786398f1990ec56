// End-to-end and cross-cutting tests, exercised as an external test
// package so they can import the worked example specs (examples/counter,
// examples/queue) without an import cycle.
package statecheck_test

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arrowcheck/statecheck/examples/counter"
	"github.com/arrowcheck/statecheck/examples/queue"
	"github.com/arrowcheck/statecheck/pkg/statecheck"
	"github.com/arrowcheck/statecheck/pkg/statecheck/genlib"
)

func handleNames(calls []statecheck.CommandCall) []string {
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Handle.Name
	}
	return out
}

// A spec with a single no-args command draws an all-"noop" sequential
// prefix handled "1","2",... and it validates.
func TestDrawCaseSingleCommandNoArgs(t *testing.T) {
	spec := counter.NoopSpec()
	g := statecheck.DrawCase(spec, statecheck.Options{MaxLength: statecheck.MaxLengthSame(6), MaxSize: 10})

	r := rand.New(rand.NewSource(1))
	c, _ := g(r, genlib.Size{Value: 10, Max: 10})

	for i, call := range c.Sequential {
		if call.Command.Name != "noop" {
			t.Fatalf("call %d is %q, want \"noop\"", i, call.Command.Name)
		}
	}
	want := make([]string, len(c.Sequential))
	for i := range want {
		want[i] = intToHandle(i + 1)
	}
	if diff := cmp.Diff(want, handleNames(c.Sequential)); diff != "" {
		t.Errorf("unexpected handle naming (-want +got):\n%s", diff)
	}
	if !statecheck.WellFormed(spec, c) {
		t.Error("generated case should be well-formed")
	}
}

func intToHandle(n int) string {
	return []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}[n]
}

// When a Spec declares a setup phase, any generated argument that
// references the setup handle must be valid against {setup}.
func TestDrawCaseSetupHandleIsBound(t *testing.T) {
	spec := counter.SetupSpec()
	g := statecheck.DrawCase(spec, statecheck.Options{MaxLength: statecheck.MaxLengthSame(3), MaxSize: 10})

	r := rand.New(rand.NewSource(2))
	c, _ := g(r, genlib.Size{Value: 10, Max: 10})

	if !statecheck.WellFormed(spec, c) {
		t.Fatal("generated case should be well-formed")
	}
	for _, call := range c.Sequential {
		if len(call.Args) == 0 {
			continue
		}
		sv, ok := call.Args[0].(statecheck.SymbolicValue)
		if !ok {
			t.Fatalf("expected useInit's argument to be symbolic, got %v", call.Args[0])
		}
		if !sv.Valid(map[statecheck.RootName]struct{}{"setup": {}}) {
			t.Errorf("argument %v referencing init should be valid against {setup}", sv)
		}
	}
}

// With threads=2 and a split max-length of {sequential:3, parallel:2},
// every draw stays within those bounds.
func TestDrawCaseRespectsSplitMaxLength(t *testing.T) {
	spec := queue.Spec()
	opts := statecheck.Options{
		Threads:   2,
		MaxLength: statecheck.MaxLengthSplit(3, 2),
		MaxSize:   10,
	}
	g := statecheck.DrawCase(spec, opts)
	r := rand.New(rand.NewSource(4))

	for i := 0; i < 100; i++ {
		c, _ := g(r, genlib.Size{Value: 10, Max: 10})
		if len(c.Sequential) > 3 {
			t.Fatalf("sequential length %d exceeds 3", len(c.Sequential))
		}
		for _, thread := range c.Parallel {
			if len(thread) > 2 {
				t.Fatalf("thread length %d exceeds 2", len(thread))
			}
		}
	}
}

// Two threads of two full-length calls each, with an empty prefix,
// produce exactly 4!/(2!*2!) = 6 interleavings.
func TestEveryInterleavingCountAtFullLength(t *testing.T) {
	spec := statecheck.Resolve(queue.Spec())
	full := statecheck.Case{
		Parallel: [][]statecheck.CommandCall{
			{{Handle: statecheck.NewRoot("1a"), Command: spec.Commands["pop"]}, {Handle: statecheck.NewRoot("2a"), Command: spec.Commands["pop"]}},
			{{Handle: statecheck.NewRoot("1b"), Command: spec.Commands["pop"]}, {Handle: statecheck.NewRoot("2b"), Command: spec.Commands["pop"]}},
		},
	}
	count := 0
	statecheck.EveryInterleaving(full, func([]statecheck.CommandCall) bool {
		count++
		return true
	})
	if count != 6 {
		t.Errorf("got %d interleavings, want 6 (4!/(2!*2!))", count)
	}
}

// A fixed push/pop race case must be well-formed with exactly 2
// interleavings: either pop can run first since both observe the queue
// has at least one item regardless of order.
func TestQueueRaceCaseIsWellFormed(t *testing.T) {
	spec := statecheck.Resolve(queue.Spec())
	c := queue.FixedRaceCase(spec)

	if !statecheck.WellFormed(spec, c) {
		t.Fatal("the fixed push/pop race case must be well-formed")
	}

	count := 0
	statecheck.EveryInterleaving(c, func([]statecheck.CommandCall) bool {
		count++
		return true
	})
	if count != 2 {
		t.Errorf("got %d interleavings, want 2", count)
	}
}

// Starting from Case{seq: [a], parallel: [[b], [c]]}, the shrink tree
// must contain the pull-into-prefix candidate that, after empty-thread
// pruning, equals Case{seq: [a,b], parallel: [[c]]}.
func TestShrinkPullsCallIntoPrefix(t *testing.T) {
	spec := statecheck.Resolve(counter.SingleApplicableSpec())
	cmd := spec.Commands["only"]

	c := statecheck.Case{
		Sequential: []statecheck.CommandCall{{Handle: statecheck.NewRoot("1"), Command: cmd}},
		Parallel: [][]statecheck.CommandCall{
			{{Handle: statecheck.NewRoot("1a"), Command: cmd}},
			{{Handle: statecheck.NewRoot("1b"), Command: cmd}},
		},
	}

	root := statecheck.Shrink(spec, c)
	found := false
	for _, child := range root.Children() {
		v := child.Value
		if len(v.Sequential) == 2 && len(v.Parallel) == 1 &&
			v.Sequential[1].Handle.Name == "1a" && v.Parallel[0][0].Handle.Name == "1b" {
			found = true
		}
	}
	if !found {
		t.Error("expected a pull-into-prefix candidate equal to {seq:[a,b], parallel:[[c]]} after pruning")
	}
}

// A spec whose only command's Requires always fails must raise
// ErrNoCommandApplicable rather than produce a degenerate empty case.
func TestDrawCasePanicsWhenNoCommandApplicable(t *testing.T) {
	spec := counter.ImpossibleSpec()
	g := statecheck.DrawCase(spec, statecheck.Options{MaxLength: statecheck.MaxLengthSame(1), MaxSize: 10})

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic carrying ErrNoCommandApplicable")
		}
		se, ok := r.(*statecheck.StateError)
		if !ok {
			t.Fatalf("expected *statecheck.StateError, got %T: %v", r, r)
		}
		if se.Unwrap() != statecheck.ErrNoCommandApplicable {
			t.Fatalf("expected ErrNoCommandApplicable, got %v", se.Unwrap())
		}
	}()
	g(rand.New(rand.NewSource(1)), genlib.Size{Value: 10, Max: 10})
}

// Across many seeds, every generated case and every shrink candidate
// within it stays well-formed, and every handle in an emitted case is
// unique.
func TestGeneratedAndShrunkCasesStayWellFormedAndUnique(t *testing.T) {
	spec := queue.Spec()
	opts := statecheck.Options{Threads: 2, MaxLength: statecheck.MaxLengthSplit(4, 3), MaxSize: 20}
	g := statecheck.DrawCase(spec, opts)

	for seed := int64(0); seed < 30; seed++ {
		r := rand.New(rand.NewSource(seed))
		c, _ := g(r, genlib.Size{Value: 15, Max: 20})

		if !statecheck.WellFormed(spec, c) {
			t.Fatalf("seed %d: generated case is not well-formed: %+v", seed, c)
		}

		seen := map[string]bool{}
		for _, call := range statecheck.AllCalls(c) {
			if seen[call.Handle.Name] {
				t.Fatalf("seed %d: duplicate handle %q", seed, call.Handle.Name)
			}
			seen[call.Handle.Name] = true
		}

		root := statecheck.Shrink(statecheck.Resolve(spec), c)
		var walk func(node statecheck.RoseTree[statecheck.Case], depth int)
		walk = func(node statecheck.RoseTree[statecheck.Case], depth int) {
			if depth > 2 {
				return
			}
			for _, child := range node.Children() {
				if !statecheck.WellFormed(spec, child.Value) {
					t.Fatalf("seed %d: shrink candidate is not well-formed: %+v", seed, child.Value)
				}
				walk(child, depth+1)
			}
		}
		walk(root, 0)
	}
}

// The expected length of the sequential prefix does not decrease as size
// grows, measured as an average over many draws at each size to smooth
// out per-draw variance.
func TestSizeScalingTrendIsNonDecreasing(t *testing.T) {
	spec := counter.CounterSpec()
	opts := statecheck.Options{MaxLength: statecheck.MaxLengthSame(10), MaxSize: 20}
	g := statecheck.DrawCase(spec, opts)

	avg := func(size int) float64 {
		r := rand.New(rand.NewSource(int64(size)))
		total := 0
		const n = 200
		for i := 0; i < n; i++ {
			c, _ := g(r, genlib.Size{Value: size, Max: 20})
			total += len(c.Sequential)
		}
		return float64(total) / n
	}

	small := avg(2)
	large := avg(18)
	if large < small {
		t.Errorf("expected larger size to not decrease expected length: size=2 avg=%.2f, size=18 avg=%.2f", small, large)
	}
}

// With generate-command absent and only one command satisfying requires,
// the picker's fallback must always choose it.
func TestPickerFallbackIsFairWithOneApplicableCommand(t *testing.T) {
	spec := counter.SingleApplicableSpec()
	g := statecheck.DrawCase(spec, statecheck.Options{MaxLength: statecheck.MaxLengthSame(5), MaxSize: 10})

	r := rand.New(rand.NewSource(9))
	for i := 0; i < 30; i++ {
		c, _ := g(r, genlib.Size{Value: 10, Max: 10})
		for _, call := range c.Sequential {
			if call.Command.Name != "only" {
				t.Fatalf("expected every call to be \"only\", got %q", call.Command.Name)
			}
		}
	}
}
