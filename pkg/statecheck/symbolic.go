package statecheck

import "fmt"

// SetupHandle is the reserved root name pre-bound when a Spec declares a
// setup phase. It is the one process-wide constant the core carries.
const SetupHandle RootName = "setup"

// RootName identifies a command call's result handle. Prefix handles are
// "1".."S"; thread t's (0-indexed) handles are "1"+letter(t).."P"+letter(t).
type RootName = string

// SymbolicValue is an opaque placeholder for a not-yet-computed result, or
// an expression over one. It is deliberately a closed interface: RootVar is
// the only variant the core requires, and FieldOf is the one pass-through
// composite form allowed.
type SymbolicValue interface {
	fmt.Stringer

	// Valid reports whether every root this value references is present in
	// bindings. For a RootVar this is exactly membership.
	Valid(bindings map[RootName]struct{}) bool

	// visitRoots calls fn once for every root name this value references,
	// including composites' bases. Unexported: only the core's own
	// handle-bookkeeping needs it.
	visitRoots(fn func(RootName))
}

// RootVar is the required SymbolicValue variant: an opaque identifier
// naming the result of an earlier CommandCall, e.g. "1", "2a", "setup".
type RootVar struct {
	Name RootName
}

// NewRoot constructs a RootVar for the given handle name.
func NewRoot(name RootName) RootVar {
	return RootVar{Name: name}
}

func (v RootVar) String() string { return v.Name }

// Valid reports whether v's root is present in bindings.
func (v RootVar) Valid(bindings map[RootName]struct{}) bool {
	_, ok := bindings[v.Name]
	return ok
}

func (v RootVar) visitRoots(fn func(RootName)) { fn(v.Name) }

// FieldOf is a composite SymbolicValue: a field projected out of an
// earlier result. It is a pure pass-through; its validity is exactly its
// Base's validity, nothing more.
type FieldOf struct {
	Base  SymbolicValue
	Field string
}

func (f FieldOf) String() string { return fmt.Sprintf("%s.%s", f.Base, f.Field) }

func (f FieldOf) Valid(bindings map[RootName]struct{}) bool { return f.Base.Valid(bindings) }

func (f FieldOf) visitRoots(fn func(RootName)) { f.Base.visitRoots(fn) }

// argsValid reports whether every SymbolicValue among args is Valid against
// bindings. Non-symbolic arguments are always valid. This is the "symbol
// validity" leg of a call's per-interleaving check.
func argsValid(args []any, bindings map[RootName]struct{}) bool {
	for _, a := range args {
		if sv, ok := a.(SymbolicValue); ok {
			if !sv.Valid(bindings) {
				return false
			}
		}
	}
	return true
}
