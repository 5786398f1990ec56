package statecheck

// RoseTree is a value plus a lazily-computed sequence of smaller RoseTrees.
// Children are a function rather than a slice: the core must never
// materialize factorial- or exponential-sized intermediate structures
// eagerly, so a tree's shrinks are only computed when walked. This is
// shaped after the lazy, pull-based production already used for result
// streams in gitrdm-gokando/pkg/minikanren/stream.go, re-cast as a pure
// function instead of a channel so generation stays single-threaded.
type RoseTree[T any] struct {
	Value    T
	children func() []RoseTree[T]
}

// NewLeaf builds a RoseTree with no shrinks.
func NewLeaf[T any](v T) RoseTree[T] {
	return RoseTree[T]{Value: v, children: func() []RoseTree[T] { return nil }}
}

// NewRoseTree builds a RoseTree whose shrinks are computed on demand by children.
// A nil children func is treated as producing no shrinks.
func NewRoseTree[T any](v T, children func() []RoseTree[T]) RoseTree[T] {
	if children == nil {
		children = func() []RoseTree[T] { return nil }
	}
	return RoseTree[T]{Value: v, children: children}
}

// Children forces and returns this node's shrink candidates.
func (t RoseTree[T]) Children() []RoseTree[T] {
	return t.children()
}

// MapRoseTree transforms a RoseTree[A] into a RoseTree[B], applying f to
// the root and to every shrink candidate encountered while walking.
func MapRoseTree[A, B any](t RoseTree[A], f func(A) B) RoseTree[B] {
	return RoseTree[B]{
		Value: f(t.Value),
		children: func() []RoseTree[B] {
			kids := t.Children()
			out := make([]RoseTree[B], len(kids))
			for i, k := range kids {
				out[i] = MapRoseTree(k, f)
			}
			return out
		},
	}
}
