package statecheck

import "github.com/arrowcheck/statecheck/pkg/statecheck/genlib"

// preconditionRetryCap bounds the same-depth redraw loop below. A
// well-designed Spec, one that keeps its requires-implies-precondition
// distributions non-degenerate, never exhausts this; it exists purely as a
// safety valve against a degenerate Spec hanging generation forever,
// mirroring the iterative-frame bound discipline in DFSSearch
// (gitrdm-gokando/pkg/minikanren/search.go), which also refuses to loop
// unboundedly on a single frame.
const preconditionRetryCap = 10000

// drawSeqTree recursively draws a list of CommandCalls aligned to handles,
// advancing the model state as it goes. It returns the drawn calls and the
// state reached after the last one.
//
// At each step: draw a command via pick, draw its args, and check its
// precondition. A precondition failure redraws at the same recursion depth
// (same remaining handles) rather than advancing; generated cases never
// contain precondition failures. Termination is controlled by a weighted
// stop/continue choice: weight 1 to stop with what's drawn so far, weight
// len(remaining handles) to draw another, so expected length grows with
// the number of handles still available (and the empty list always has
// positive probability).
func drawSeqTree(spec Spec, state any, handles []RootName, d genlib.Draw) ([]CommandCall, any, error) {
	var calls []CommandCall
	remaining := handles

	for len(remaining) > 0 {
		if d.Choose([]int{1, len(remaining)}) == 0 {
			break
		}

		var (
			cmd  Command
			args []any
		)
		accepted := false
		for attempt := 0; attempt < preconditionRetryCap; attempt++ {
			var err error
			cmd, err = pick(spec, state, d)
			if err != nil {
				return nil, nil, err
			}
			args = cmd.Args(state, d)
			if cmd.Precond(state, args) {
				accepted = true
				break
			}
		}
		if !accepted {
			return nil, nil, &StateError{
				Err:   ErrNoCommandApplicable,
				State: state,
			}
		}

		handle := NewRoot(remaining[0])
		calls = append(calls, CommandCall{Handle: handle, Command: cmd, Args: args})
		state = cmd.NextState(state, args, handle)
		remaining = remaining[1:]
	}

	return calls, state, nil
}

// shrinkCallList builds the native shrinks a call list offers the
// Shrinker: one smaller list for every way to delete a single call. Gaps
// left by a deletion are not renumbered; a candidate with a dangling
// symbolic reference is simply rejected by the well-formedness filter, so
// shrinkCallList never needs to know about handle validity.
func shrinkCallList(calls []CommandCall) []RoseTree[[]CommandCall] {
	if len(calls) == 0 {
		return nil
	}
	out := make([]RoseTree[[]CommandCall], 0, len(calls))
	for i := range calls {
		smaller := make([]CommandCall, 0, len(calls)-1)
		smaller = append(smaller, calls[:i]...)
		smaller = append(smaller, calls[i+1:]...)
		out = append(out, callListTree(smaller))
	}
	return out
}

// callListTree wraps calls in a RoseTree whose children are its own
// smaller-by-one-deletion candidates, recursively.
func callListTree(calls []CommandCall) RoseTree[[]CommandCall] {
	return NewRoseTree(calls, func() []RoseTree[[]CommandCall] {
		return shrinkCallList(calls)
	})
}
