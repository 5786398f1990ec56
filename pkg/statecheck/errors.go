package statecheck

import (
	"errors"
	"fmt"
)

// Sentinel errors for the core's three fatal-assertion kinds. These follow
// the same package-level `var Err... = errors.New(...)` idiom as
// gitrdm-gokando/pkg/minikanren/fd.go (ErrInconsistent, ErrInvalidValue,
// ErrDomainEmpty, ErrInvalidArgument).
var (
	// ErrNoCommandApplicable signals that zero commands satisfy Requires
	// at some state. Fatal: the core never invents a state or a no-op.
	ErrNoCommandApplicable = errors.New("statecheck: no command satisfies requires for the current state")

	// ErrUnknownCommand signals that Spec.GenerateCommand returned a name
	// absent from Spec.Commands. Treated as a variant of
	// ErrNoCommandApplicable rather than its own recovery path.
	ErrUnknownCommand = errors.New("statecheck: generate-command returned a name not present in commands")

	// ErrTooManyThreads signals Options.Threads exceeding the 26-letter
	// handle-naming cap.
	ErrTooManyThreads = errors.New("statecheck: threads exceeds the 26-letter handle cap")
)

// StateError wraps a sentinel error with the offending ModelState, so a
// NoCommandApplicable/UnknownCommand failure is signalled immediately with
// the offending state embedded.
type StateError struct {
	Err   error
	State any
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s (state: %#v)", e.Err, e.State)
}

func (e *StateError) Unwrap() error { return e.Err }

// Is lets errors.Is match an ErrUnknownCommand failure against
// ErrNoCommandApplicable as well, since an unknown name is handled as a
// case of no command being applicable.
func (e *StateError) Is(target error) bool {
	return e.Err == ErrUnknownCommand && target == ErrNoCommandApplicable
}
