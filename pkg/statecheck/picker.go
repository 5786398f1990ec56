package statecheck

import (
	"github.com/arrowcheck/statecheck/internal/randutil"
	"github.com/arrowcheck/statecheck/pkg/statecheck/genlib"
)

// pickerRetryBudget is the retry budget standard to a host PBT library,
// applied to the generate-command such-that filter.
const pickerRetryBudget = 100

// pick draws a Command whose Requires holds against state. It has two modes:
//
//   - If spec.GenerateCommand is set, draw a name from it and filter via
//     Requires, retrying up to pickerRetryBudget times.
//   - Otherwise, enumerate spec.Commands (in stable sorted order, so replay
//     is deterministic), filter by Requires, and draw uniformly. An empty
//     filtered set raises ErrNoCommandApplicable.
//
// A name returned by GenerateCommand that is not in spec.Commands raises a
// *StateError carrying ErrUnknownCommand, which errors.Is also matches
// against ErrNoCommandApplicable.
func pick(spec Spec, state any, d genlib.Draw) (Command, error) {
	if spec.GenerateCommand != nil {
		for attempt := 0; attempt < pickerRetryBudget; attempt++ {
			name := spec.GenerateCommand(state, d)
			cmd, ok := spec.Commands[name]
			if !ok {
				// An unknown name is a spec defect, not a transient
				// rejection: don't burn the retry budget on it.
				return Command{}, &StateError{Err: ErrUnknownCommand, State: state}
			}
			if cmd.Requires(state) {
				return cmd, nil
			}
		}
		return Command{}, &StateError{Err: ErrNoCommandApplicable, State: state}
	}

	names := randutil.SortedKeys(spec.Commands)
	var applicable []Command
	for _, name := range names {
		cmd := spec.Commands[name]
		if cmd.Requires(state) {
			applicable = append(applicable, cmd)
		}
	}
	if len(applicable) == 0 {
		return Command{}, &StateError{Err: ErrNoCommandApplicable, State: state}
	}
	idx := d.Int(0, len(applicable))
	return applicable[idx], nil
}
