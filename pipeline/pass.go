// Package pipeline defines the contracts between a formatter's
// transformation passes and the engine that drives them: the Pass and
// StructuredPass interfaces, the Edit values passes emit, the Context they
// run against, and the ordered Pipeline that holds them.
package pipeline

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Pass is one transformation step. It reads the context's config, tree, and
// source, and returns byte-range edits against that snapshot. The edits may
// be unordered and may be empty; normalization is the engine's job.
//
// All passes in one pipeline share the config type C.
type Pass[C any] interface {
	Run(ctx *Context[C]) []Edit
}

// NamedPass is optionally implemented by passes that want their diagnostics
// tagged with a stable name instead of a pipeline position.
type NamedPass interface {
	PassName() string
}

// PassFunc adapts a plain function to the Pass interface.
type PassFunc[C any] func(ctx *Context[C]) []Edit

func (f PassFunc[C]) Run(ctx *Context[C]) []Edit {
	return f(ctx)
}

// StructuredPass is a higher-level pass contract for the common shape
// "locate regions, extract items within each, reorder or rewrite the items,
// render back to text". Structured implements it as a Pass so authors never
// touch edit normalization or diagnostic plumbing.
type StructuredPass[C any, T any] interface {
	// Extract traverses the AST and returns every region to rewrite along
	// with the items it contains.
	Extract(root *tree_sitter.Node, source string) []EditTarget[T]

	// Transform reorders, filters, or rewrites the items of one target. An
	// error drops the target and surfaces as an error diagnostic. Returning
	// a nil slice (and nil error) leaves the target untouched.
	Transform(config C, root *tree_sitter.Node, source string, items []T) ([]T, error)

	// Build renders the final replacement text for one target's items.
	Build(config C, items []T) string
}

// Structured adapts a StructuredPass into a Pass. Targets with no items are
// skipped; a Transform failure records an error diagnostic and drops that
// target only.
func Structured[C any, T any](p StructuredPass[C, T]) Pass[C] {
	return &structuredAdapter[C, T]{inner: p}
}

type structuredAdapter[C any, T any] struct {
	inner StructuredPass[C, T]
}

func (a *structuredAdapter[C, T]) Run(ctx *Context[C]) []Edit {
	var edits []Edit
	for _, target := range a.inner.Extract(ctx.Root(), ctx.Source()) {
		if len(target.Items) == 0 {
			continue
		}

		items, err := a.inner.Transform(ctx.Config(), ctx.Root(), ctx.Source(), target.Items)
		if err != nil {
			span := target.Range
			ctx.Error(fmt.Sprintf("transform failed: %v", err), &span)
			continue
		}
		if items == nil {
			continue
		}

		edits = append(edits, Edit{
			Range:   target.Range,
			Content: a.inner.Build(ctx.Config(), items),
		})
	}
	return edits
}

// PassName forwards the inner pass's name when it has one.
func (a *structuredAdapter[C, T]) PassName() string {
	if named, ok := a.inner.(NamedPass); ok {
		return named.PassName()
	}
	return ""
}
