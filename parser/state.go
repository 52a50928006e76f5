package parser

import (
	"fmt"
	"sort"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// State pairs the live source text of one file with its current parse tree
// and a line-offset index. The tree, when present, always describes exactly
// the bytes in source; Parser.ApplyEdit is the only path that keeps the two
// in sync across a mutation.
type State struct {
	source      string
	tree        *tree_sitter.Tree
	lineOffsets []uint
}

// NewState creates a state for the given source with no tree.
func NewState(source string) *State {
	s := &State{source: source}
	s.lineOffsets = computeLineOffsets(source)
	return s
}

// Source returns the current source text.
func (s *State) Source() string {
	return s.source
}

// Tree returns the current parse tree, or nil if the source has not been
// parsed yet.
func (s *State) Tree() *tree_sitter.Tree {
	return s.tree
}

// HasTree reports whether a parse tree is present.
func (s *State) HasTree() bool {
	return s.tree != nil
}

// Len returns the length of the source in bytes.
func (s *State) Len() uint {
	return uint(len(s.source))
}

// ByteToPoint maps a byte offset to a (row, column) pair using binary search
// over the line-offset index. Offsets past the end of the source clamp to
// end-of-source.
func (s *State) ByteToPoint(byteOffset uint) tree_sitter.Point {
	if byteOffset > uint(len(s.source)) {
		byteOffset = uint(len(s.source))
	}
	// Greatest row whose line start is <= byteOffset.
	row := sort.Search(len(s.lineOffsets), func(i int) bool {
		return s.lineOffsets[i] > byteOffset
	}) - 1
	return tree_sitter.Point{
		Row:    uint(row),
		Column: byteOffset - s.lineOffsets[row],
	}
}

// ReplaceRange splices replacement over the half-open byte interval
// [start, end) and rebuilds the line-offset index. It does not touch the
// tree; callers that hold one must notify it (see Parser.ApplyEdit).
//
// An out-of-range span is a bug in the caller, not a runtime condition, and
// panics.
func (s *State) ReplaceRange(start, end uint, replacement string) {
	if start > end || end > uint(len(s.source)) {
		panic(fmt.Sprintf("parser: edit span [%d, %d) out of range for source of %d bytes", start, end, len(s.source)))
	}
	s.source = s.source[:start] + replacement + s.source[end:]
	s.lineOffsets = computeLineOffsets(s.source)
}

// setTree installs a new tree, closing the previous one.
func (s *State) setTree(tree *tree_sitter.Tree) {
	if s.tree != nil && s.tree != tree {
		s.tree.Close()
	}
	s.tree = tree
}

// Close releases the parse tree, if any. The state must not be used after.
func (s *State) Close() {
	if s.tree != nil {
		s.tree.Close()
		s.tree = nil
	}
}

// computeLineOffsets returns [0] plus the byte index following each newline.
func computeLineOffsets(source string) []uint {
	offsets := []uint{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			offsets = append(offsets, uint(i)+1)
		}
	}
	return offsets
}
