package pipeline

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Context is what a pass sees while it runs: the shared config, the AST root
// over the current source, the source itself, and a sink for diagnostics.
// The config and source are read-only from the pass's point of view; the
// engine drains the diagnostics at the pass boundary.
type Context[C any] struct {
	config      C
	root        *tree_sitter.Node
	source      string
	diagnostics []Diagnostic
	origin      string
}

// NewContext builds a context over one snapshot of (config, tree, source).
func NewContext[C any](config C, root *tree_sitter.Node, source string) *Context[C] {
	return &Context[C]{
		config: config,
		root:   root,
		source: source,
	}
}

// WithOrigin sets the default Source stamped onto diagnostics pushed without
// one. The engine uses the pass name or its pipeline position.
func (c *Context[C]) WithOrigin(origin string) *Context[C] {
	c.origin = origin
	return c
}

// Config returns the configuration shared across passes.
func (c *Context[C]) Config() C {
	return c.config
}

// Root returns the AST root node for the current file.
func (c *Context[C]) Root() *tree_sitter.Node {
	return c.root
}

// Source returns the current source text.
func (c *Context[C]) Source() string {
	return c.source
}

// PushDiagnostic registers an arbitrary diagnostic, stamping the default
// origin when Source is unset.
func (c *Context[C]) PushDiagnostic(d Diagnostic) {
	if d.Source == "" {
		d.Source = c.origin
	}
	c.diagnostics = append(c.diagnostics, d)
}

// Info emits an info diagnostic. span may be nil for file-level messages.
func (c *Context[C]) Info(message string, span *Span) {
	c.PushDiagnostic(Diagnostic{Range: span, Message: message, Severity: SeverityInfo})
}

// Warning emits a warning diagnostic.
func (c *Context[C]) Warning(message string, span *Span) {
	c.PushDiagnostic(Diagnostic{Range: span, Message: message, Severity: SeverityWarning})
}

// Error emits an error diagnostic. Errors from passes are advisory; they do
// not stop the pipeline.
func (c *Context[C]) Error(message string, span *Span) {
	c.PushDiagnostic(Diagnostic{Range: span, Message: message, Severity: SeverityError})
}

// Drain moves the accumulated diagnostics out of the context.
func (c *Context[C]) Drain() []Diagnostic {
	d := c.diagnostics
	c.diagnostics = nil
	return d
}
