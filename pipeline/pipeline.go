package pipeline

// Pipeline is an ordered, append-only collection of passes sharing one
// config type. Insertion order is execution order; there is no removal and
// no reordering. The engine treats a pipeline as immutable while it runs.
type Pipeline[C any] struct {
	passes []Pass[C]
}

// New creates an empty pipeline.
func New[C any]() *Pipeline[C] {
	return &Pipeline[C]{}
}

// AddPass appends a pass. Returns the pipeline for chaining.
func (p *Pipeline[C]) AddPass(pass Pass[C]) *Pipeline[C] {
	p.passes = append(p.passes, pass)
	return p
}

// Passes returns the passes in execution order.
func (p *Pipeline[C]) Passes() []Pass[C] {
	return p.passes
}

// Len returns the number of passes.
func (p *Pipeline[C]) Len() int {
	return len(p.passes)
}

// IsEmpty reports whether the pipeline holds no passes.
func (p *Pipeline[C]) IsEmpty() bool {
	return len(p.passes) == 0
}
