package statecheck

import "github.com/arrowcheck/statecheck/pkg/statecheck/genlib"

// Command is the core's uniform view of a user-supplied command. A
// zero-valued field takes the default listed in its doc comment; use
// resolved (called once per Spec by DrawCase/Shrink) rather than checking
// nils at every call site.
type Command struct {
	// Name identifies the command within a Spec's Commands map.
	Name string

	// Requires reports whether this command may even be considered against
	// state. Default: always true.
	Requires func(state any) bool

	// Args draws the argument list for a call against state. Drawn
	// arguments may be or contain SymbolicValues referencing earlier
	// handles. Default: no arguments (a nil slice).
	Args func(state any, d genlib.Draw) []any

	// Precond reports whether a drawn (state, args) pair is acceptable.
	// Default: always true.
	Precond func(state any, args []any) bool

	// NextState advances the model state as if this call had executed,
	// given its symbolic result handle. Must be pure: it never observes a
	// real result during generation. Default: identity.
	NextState func(state any, args []any, handle SymbolicValue) any
}

// resolved returns a copy of c with every nil field replaced by its default.
func (c Command) resolved() Command {
	if c.Requires == nil {
		c.Requires = func(any) bool { return true }
	}
	if c.Args == nil {
		c.Args = func(any, genlib.Draw) []any { return nil }
	}
	if c.Precond == nil {
		c.Precond = func(any, []any) bool { return true }
	}
	if c.NextState == nil {
		c.NextState = func(s any, _ []any, _ SymbolicValue) any { return s }
	}
	return c
}

// MaxLength bounds the sequential prefix and each parallel thread
// independently. Use MaxLengthSame for one bound applied to both, or
// MaxLengthSplit for distinct bounds.
type MaxLength struct {
	Sequential int
	Parallel   int
}

// MaxLengthSplit builds a MaxLength with distinct sequential/parallel bounds.
func MaxLengthSplit(sequential, parallel int) MaxLength {
	return MaxLength{Sequential: sequential, Parallel: parallel}
}

// MaxLengthSame builds a MaxLength applying the same bound to both.
func MaxLengthSame(n int) MaxLength {
	return MaxLength{Sequential: n, Parallel: n}
}

// Options are the recognised generation options: Threads, MaxLength, MaxSize.
type Options struct {
	// Threads is the number of parallel suffix threads. Default 0. Capped
	// at 26 by the handle-letter scheme.
	Threads int

	// MaxLength bounds prefix/thread lengths. Zero value means "use
	// defaults" (10/10), see withDefaults.
	MaxLength MaxLength

	// MaxSize is the size at which full lengths are reached. Default 200.
	MaxSize int
}

// withDefaults fills Options with the stated defaults (10/10, 200),
// following the config-with-defaults pattern in strategy.go.
func (o Options) withDefaults() Options {
	if o.MaxLength.Sequential == 0 {
		o.MaxLength.Sequential = 10
	}
	if o.MaxLength.Parallel == 0 {
		o.MaxLength.Parallel = 10
	}
	if o.MaxSize == 0 {
		o.MaxSize = 200
	}
	return o
}

// Spec is the user-supplied specification of a system under test.
type Spec struct {
	// Commands maps a command name to its adapter.
	Commands map[string]Command

	// InitialState returns the initial ModelState when Setup is nil.
	InitialState func() any

	// InitialStateWithSetup returns the initial ModelState given the
	// pre-bound setup handle, used when Setup is non-nil. Exactly one of
	// InitialState / InitialStateWithSetup must be set.
	InitialStateWithSetup func(setup RootVar) any

	// Setup, if non-nil, declares a setup phase: the reserved "setup" root
	// handle is pre-bound before generation begins, and
	// InitialStateWithSetup is called with it instead of InitialState.
	Setup *Command

	// GenerateCommand, if non-nil, draws a command name directly instead of
	// the uniform-over-requires-passing fallback.
	GenerateCommand func(state any, d genlib.Draw) string
}

// resolved copies spec with every Command's fields defaulted.
func (s Spec) resolved() Spec {
	cmds := make(map[string]Command, len(s.Commands))
	for name, c := range s.Commands {
		c.Name = name
		cmds[name] = c.resolved()
	}
	s.Commands = cmds
	if s.Setup != nil {
		resolved := s.Setup.resolved()
		s.Setup = &resolved
	}
	return s
}

// initialState computes the ModelState at the start of generation,
// pre-binding the setup handle when Setup is declared.
func (s Spec) initialState(bindings map[RootName]struct{}) any {
	if s.Setup != nil {
		bindings[SetupHandle] = struct{}{}
		return s.InitialStateWithSetup(NewRoot(SetupHandle))
	}
	return s.InitialState()
}
