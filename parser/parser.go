// Package parser wraps tree-sitter's incremental parser behind the State and
// Parser types the formatting engine drives. A State owns one file's live
// source and tree; a Parser owns the grammar-bound tree-sitter parser and is
// reused across files so the grammar loads once.
package parser

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Parser wraps a tree-sitter parser configured for one language.
type Parser struct {
	inner *tree_sitter.Parser
}

// New constructs a parser bound to the provider's grammar. A grammar the
// tree-sitter runtime rejects is a programmer bug, not a runtime condition,
// and panics.
func New(provider LanguageProvider) *Parser {
	inner := tree_sitter.NewParser()
	if err := inner.SetLanguage(provider.Language()); err != nil {
		panic(fmt.Sprintf("parser: loading grammar: %v", err))
	}
	return &Parser{inner: inner}
}

// Parse runs a full parse of the state's source and installs the result as
// the state's tree.
func (p *Parser) Parse(state *State) {
	state.setTree(p.inner.Parse([]byte(state.source), nil))
}

// Reparse parses the state's source incrementally against the existing tree
// when one is present; otherwise it is equivalent to Parse.
func (p *Parser) Reparse(state *State) {
	state.setTree(p.inner.Parse([]byte(state.source), state.tree))
}

// ApplyEdit replaces [startByte, oldEndByte) in the state's source with
// newText and notifies the existing tree so a subsequent Reparse runs
// incrementally.
//
// tree-sitter wants (byte, row, column) for both endpoints at pre- and
// post-edit, so the old end point must come from the state before the splice
// and the new end point from the state after it.
func (p *Parser) ApplyEdit(state *State, startByte, oldEndByte uint, newText string) {
	startPoint := state.ByteToPoint(startByte)
	oldEndPoint := state.ByteToPoint(oldEndByte)
	newEndByte := startByte + uint(len(newText))

	state.ReplaceRange(startByte, oldEndByte, newText)

	newEndPoint := state.ByteToPoint(newEndByte)

	if state.tree != nil {
		state.tree.Edit(&tree_sitter.InputEdit{
			StartByte:      startByte,
			OldEndByte:     oldEndByte,
			NewEndByte:     newEndByte,
			StartPosition:  startPoint,
			OldEndPosition: oldEndPoint,
			NewEndPosition: newEndPoint,
		})
	}
}

// Close releases the underlying tree-sitter parser.
func (p *Parser) Close() {
	p.inner.Close()
}
