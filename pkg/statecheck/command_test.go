package statecheck

import (
	"testing"

	"github.com/arrowcheck/statecheck/pkg/statecheck/genlib"
)

func TestCommandResolvedFillsDefaults(t *testing.T) {
	c := Command{Name: "x"}.resolved()

	if !c.Requires(nil) {
		t.Error("default Requires should be always-true")
	}
	if got := c.Args(nil, genlib.Draw{}); got != nil {
		t.Errorf("default Args should be empty, got %v", got)
	}
	if !c.Precond(nil, nil) {
		t.Error("default Precond should be always-true")
	}
	if got := c.NextState("state", nil, NewRoot("1")); got != "state" {
		t.Errorf("default NextState should be identity, got %v", got)
	}
}

func TestCommandResolvedPreservesSetFields(t *testing.T) {
	called := false
	c := Command{
		Requires: func(any) bool { called = true; return false },
	}.resolved()

	if c.Requires(nil) {
		t.Error("resolved should not override a set Requires")
	}
	if !called {
		t.Error("resolved should call through to the original Requires")
	}
}

func TestOptionsWithDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	if o.MaxLength.Sequential != 10 || o.MaxLength.Parallel != 10 {
		t.Errorf("default MaxLength = %+v, want {10 10}", o.MaxLength)
	}
	if o.MaxSize != 200 {
		t.Errorf("default MaxSize = %d, want 200", o.MaxSize)
	}

	custom := Options{MaxLength: MaxLengthSplit(3, 2), MaxSize: 50}.withDefaults()
	if custom.MaxLength.Sequential != 3 || custom.MaxLength.Parallel != 2 {
		t.Errorf("custom MaxLength was overwritten: %+v", custom.MaxLength)
	}
	if custom.MaxSize != 50 {
		t.Errorf("custom MaxSize was overwritten: %d", custom.MaxSize)
	}
}

func TestSpecResolvedSetsCommandNames(t *testing.T) {
	spec := Spec{
		Commands: map[string]Command{
			"a": {},
			"b": {},
		},
		InitialState: func() any { return 0 },
	}.resolved()

	if spec.Commands["a"].Name != "a" || spec.Commands["b"].Name != "b" {
		t.Errorf("resolved spec did not stamp command names: %+v", spec.Commands)
	}
}

func TestSpecInitialStateWithSetupBindsSetupHandle(t *testing.T) {
	setup := Command{}
	spec := Spec{
		Setup: &setup,
		Commands: map[string]Command{
			"x": {},
		},
		InitialStateWithSetup: func(h RootVar) any { return h },
	}.resolved()

	bindings := map[RootName]struct{}{}
	state := spec.initialState(bindings)

	if _, ok := bindings[SetupHandle]; !ok {
		t.Error("initialState with Setup declared should pre-bind the setup handle")
	}
	if state.(RootVar).Name != SetupHandle {
		t.Errorf("initialState should hand InitialStateWithSetup the setup root, got %v", state)
	}
}
