package ts2abc

// NoopOptimizer is the default Optimizer: it returns data unchanged. The
// real bytecode optimizer is an out-of-tree collaborator (§1); this
// stand-in exists only so the two-pass emit contract in Builder.finish is
// exercised and testable without pulling in an optimizer implementation.
type NoopOptimizer struct{}

// Optimize returns data unchanged.
func (NoopOptimizer) Optimize(data []byte) ([]byte, error) {
	return data, nil
}
