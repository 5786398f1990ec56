package statecheck

// Resolve fills every Command's default fields across spec. DrawCase
// and Shrink already call this internally; it is exported so callers that
// build a Case by hand (worked examples, tests) can pull Commands with
// their defaults already filled rather than duplicating resolution logic.
func Resolve(spec Spec) Spec {
	return spec.resolved()
}

// WellFormed reports whether every topological interleaving of c is
// model-valid against spec: the core's well-formedness invariant. Shrink
// already filters every candidate through this; it is exported so a
// caller that constructs or receives a Case from elsewhere can check the
// same invariant before trusting it.
func WellFormed(spec Spec, c Case) bool {
	return wellFormed(spec.resolved(), c)
}

// EveryInterleaving visits every topological interleaving of c's
// sequential prefix with its parallel threads, short-circuiting when
// visit returns false. Exported so callers can reason about or count
// interleavings without reimplementing the recursive merge.
func EveryInterleaving(c Case, visit func([]CommandCall) bool) {
	everyInterleaving(c, visit)
}

// AllCalls returns every call in c, prefix first then each thread in
// order. A handle-uniqueness check operates over exactly this sequence.
func AllCalls(c Case) []CommandCall {
	return c.allCalls()
}
