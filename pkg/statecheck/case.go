package statecheck

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/arrowcheck/statecheck/pkg/statecheck/genlib"
)

// CommandCall is one drawn call: a symbolic result handle, the command it
// invokes, and its (possibly symbolic) arguments.
type CommandCall struct {
	Handle  RootVar
	Command Command
	Args    []any
}

func (c CommandCall) String() string {
	return fmt.Sprintf("%s = %s(%v)", c.Handle, c.Command.Name, c.Args)
}

// Case is a generated test case: a sequential prefix and zero or more
// parallel threads. Thread index t (0-indexed) maps to letter(t).
type Case struct {
	Sequential []CommandCall
	Parallel   [][]CommandCall
}

// maxThreads is the handle-naming cap: the plain alphabet a..z, documented
// here and enforced rather than guessing at a 27th letter.
const maxThreads = 26

// letter returns the handle-naming letter for thread index t (0-indexed).
// Panics if t is out of [0, maxThreads); callers must validate Threads
// against maxThreads before calling this.
func letter(t int) byte {
	if t < 0 || t >= maxThreads {
		panic("statecheck: thread index out of the 26-letter handle range")
	}
	return 'a' + byte(t)
}

// prefixHandles returns the handle names "1".."n".
func prefixHandles(n int) []RootName {
	out := make([]RootName, n)
	for i := 0; i < n; i++ {
		out[i] = strconv.Itoa(i + 1)
	}
	return out
}

// threadHandles returns the handle names "1"+letter(t) .. "n"+letter(t).
func threadHandles(n int, t int) []RootName {
	l := string(letter(t))
	out := make([]RootName, n)
	for i := 0; i < n; i++ {
		out[i] = strconv.Itoa(i+1) + l
	}
	return out
}

// scaledLength computes floor(max * size/maxSize), the size-scaling rule
// whose expected length must be monotone non-decreasing in size/max-size.
func scaledLength(max int, sz genlib.Size) int {
	if sz.Max <= 0 {
		return max
	}
	return (max * sz.Value) / sz.Max
}

// DrawCase returns a Generator for whole Cases. It has no shrink cursor of
// its own: the integrated Shrinker (shrink.go) is explicit and replaces
// any rose-tree-derived shrinking here, so DrawCase's Generator always
// returns a no-op shrink function; callers that want to shrink a Case call
// Shrink directly. A Generator has no error result, so a draw error
// (ErrTooManyThreads, or a *StateError such as ErrNoCommandApplicable) is
// raised as a panic carrying that error.
func DrawCase(spec Spec, opts Options) genlib.Generator[Case] {
	spec = spec.resolved()
	opts = opts.withDefaults()

	return func(r *rand.Rand, sz genlib.Size) (Case, genlib.ShrinkFunc[Case]) {
		c, err := drawCaseOnce(spec, opts, r, sz)
		if err != nil {
			panic(err)
		}
		noShrink := func(bool) (Case, bool) { return Case{}, false }
		return c, noShrink
	}
}

// drawCaseOnce performs one draw of a Case: bind, draw the prefix, then
// draw each thread against the state reached after the prefix.
func drawCaseOnce(spec Spec, opts Options, r *rand.Rand, sz genlib.Size) (Case, error) {
	if opts.Threads > maxThreads {
		return Case{}, ErrTooManyThreads
	}

	bindings := map[RootName]struct{}{}
	state0 := spec.initialState(bindings)

	// Lengths scale against opts.MaxSize; sizes at or past it get full lengths.
	scale := genlib.Size{Value: sz.Value, Max: opts.MaxSize}
	if scale.Value > scale.Max {
		scale.Value = scale.Max
	}
	s := scaledLength(opts.MaxLength.Sequential, scale)
	p := scaledLength(opts.MaxLength.Parallel, scale)

	d := genlib.NewDraw(r, sz)

	prefix, state1, err := drawSeqTree(spec, state0, prefixHandles(s), d)
	if err != nil {
		return Case{}, err
	}

	parallel := make([][]CommandCall, opts.Threads)
	for t := opts.Threads - 1; t >= 0; t-- {
		thread, _, err := drawSeqTree(spec, state1, threadHandles(p, t), d)
		if err != nil {
			return Case{}, err
		}
		parallel[t] = thread
	}

	return Case{Sequential: prefix, Parallel: parallel}, nil
}

// allCalls returns every call in the case, prefix first, thread 0..n-1 in
// order, for handle-uniqueness checks and similar whole-case scans.
func (c Case) allCalls() []CommandCall {
	out := append([]CommandCall{}, c.Sequential...)
	for _, thread := range c.Parallel {
		out = append(out, thread...)
	}
	return out
}

// length returns (total, len(sequential), sum(len(thread))). The shrinker's
// monotone measure (measureLess) compares these as (total,
// sum(len(thread)), len(sequential)).
func (c Case) length() (total, seq, par int) {
	seq = len(c.Sequential)
	for _, thread := range c.Parallel {
		par += len(thread)
	}
	return seq + par, seq, par
}

// pruneEmptyThreads drops empty threads from parallel so the enumerator's
// base case is triggered promptly and shrinks can fully eliminate a thread.
func pruneEmptyThreads(parallel [][]CommandCall) [][]CommandCall {
	out := make([][]CommandCall, 0, len(parallel))
	for _, thread := range parallel {
		if len(thread) > 0 {
			out = append(out, thread)
		}
	}
	return out
}
