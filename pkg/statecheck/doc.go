// Package statecheck generates and shrinks property-based, stateful,
// concurrency-aware test cases.
//
// Given a Spec (a model of a system under test made of named Commands,
// each with a model state transition, an argument generator, a
// precondition, and, outside this package, a postcondition), DrawCase
// produces a random Case: a sequential prefix of CommandCalls followed by
// zero or more parallel suffix threads. Each call's result is a symbolic
// RootVar that can be referenced by later calls' arguments; the model
// state advances as if the calls had executed, but nothing is actually run.
//
// Shrink takes a failing Case and produces a RoseTree of strictly smaller
// candidates, each guaranteed well-formed: for every topological
// interleaving of its prefix and threads, every call's Requires,
// precondition, and symbolic-argument validity hold against the model
// state reached by its predecessors in that interleaving. This is what
// lets a caller trust that any discrepancy observed while actually
// executing a Case reflects a real bug in the system under test, not an
// ill-formed test case.
//
// This package does not execute commands, does not check postconditions,
// and is not a test-framework integration; those are the job of the host
// that drives DrawCase/Shrink (see package genlib for a minimal stand-in
// used by this package's own tests).
package statecheck
