package statecheck

// everyInterleaving visits every topological interleaving of c's sequential
// prefix with its parallel threads. With no non-empty threads it visits
// the single list c.Sequential. Otherwise, for each thread i with at least
// one call, it recurses with that call appended to the sequence and that
// thread's head consumed.
//
// visit is called once per interleaving; returning false stops the walk
// immediately (the caller has seen enough, e.g. the Validator found a
// failure). everyInterleaving never materializes more than one
// interleaving's worth of slices at a time, so an (n*k)!/(k!)^n-sized space
// is walked without ever being held in memory at once.
func everyInterleaving(c Case, visit func([]CommandCall) bool) {
	var walk func(seq []CommandCall, parallel [][]CommandCall) bool
	walk = func(seq []CommandCall, parallel [][]CommandCall) bool {
		sawThread := false
		for i, thread := range parallel {
			if len(thread) == 0 {
				continue
			}
			sawThread = true

			extended := make([]CommandCall, len(seq)+1)
			copy(extended, seq)
			extended[len(seq)] = thread[0]

			next := make([][]CommandCall, len(parallel))
			copy(next, parallel)
			next[i] = thread[1:]

			if !walk(extended, next) {
				return false
			}
		}
		if sawThread {
			return true
		}
		return visit(seq)
	}
	walk(append([]CommandCall{}, c.Sequential...), c.Parallel)
}

// validCommands is the Validator: a left fold over sequence that rejects
// on the first Requires failure, symbol-validity failure, or Precond
// failure, otherwise threading (state, bindings) forward via NextState
// and handle registration.
func validCommands(sequence []CommandCall, state any, bindings map[RootName]struct{}) bool {
	// Copy so the caller's bindings set is never mutated by a probe.
	live := make(map[RootName]struct{}, len(bindings)+len(sequence))
	for k := range bindings {
		live[k] = struct{}{}
	}

	for _, call := range sequence {
		if !call.Command.Requires(state) {
			return false
		}
		if !argsValid(call.Args, live) {
			return false
		}
		if !call.Command.Precond(state, call.Args) {
			return false
		}
		state = call.Command.NextState(state, call.Args, call.Handle)
		live[call.Handle.Name] = struct{}{}
	}
	return true
}

// wellFormed reports whether every interleaving of c is model-valid: every
// call's Requires, symbolic-argument validity, and precondition hold
// against the state reached by its predecessors. It recomputes the spec's
// initial state/bindings fresh for each call, since well-formedness is a
// property of (spec, c) alone, not of however c happened to be generated.
func wellFormed(spec Spec, c Case) bool {
	ok := true
	everyInterleaving(c, func(seq []CommandCall) bool {
		bindings := map[RootName]struct{}{}
		state := spec.initialState(bindings)
		if !validCommands(seq, state, bindings) {
			ok = false
			return false
		}
		return true
	})
	return ok
}
