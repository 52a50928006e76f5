package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

func TestState_LineOffsets(t *testing.T) {
	// The index is [0] plus the byte following each newline.
	tests := []struct {
		name   string
		source string
		want   []uint
	}{
		{"empty", "", []uint{0}},
		{"single line no newline", "abc", []uint{0}},
		{"single line with newline", "abc\n", []uint{0, 4}},
		{"two lines", "ab\ncd", []uint{0, 3}},
		{"blank lines", "\n\n", []uint{0, 1, 2}},
		{"trailing blank", "a\nb\n", []uint{0, 2, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(tt.source)
			assert.Equal(t, tt.want, s.lineOffsets)
		})
	}
}

func TestState_ByteToPoint(t *testing.T) {
	s := NewState("ab\ncde\n\nf")

	tests := []struct {
		byte uint
		want tree_sitter.Point
	}{
		{0, tree_sitter.Point{Row: 0, Column: 0}},
		{1, tree_sitter.Point{Row: 0, Column: 1}},
		{2, tree_sitter.Point{Row: 0, Column: 2}}, // the newline itself
		{3, tree_sitter.Point{Row: 1, Column: 0}},
		{6, tree_sitter.Point{Row: 1, Column: 3}},
		{7, tree_sitter.Point{Row: 2, Column: 0}},
		{8, tree_sitter.Point{Row: 3, Column: 0}},
		{9, tree_sitter.Point{Row: 3, Column: 1}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.ByteToPoint(tt.byte), "byte %d", tt.byte)
	}
}

func TestState_ByteToPoint_ClampsPastEnd(t *testing.T) {
	s := NewState("ab\nc")
	assert.Equal(t, tree_sitter.Point{Row: 1, Column: 1}, s.ByteToPoint(999))
}

func TestState_ByteToPoint_RowColumnInvariant(t *testing.T) {
	// For every offset b: lineOffsets[row] <= b and b - lineOffsets[row] == column.
	s := NewState("one\ntwo three\n\nfour")
	for b := uint(0); b <= s.Len(); b++ {
		p := s.ByteToPoint(b)
		require.LessOrEqual(t, s.lineOffsets[p.Row], b)
		require.Equal(t, b-s.lineOffsets[p.Row], p.Column)
	}
}

func TestState_ReplaceRange(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		start, end  uint
		replacement string
		want        string
	}{
		{"replace middle", "abcdef", 2, 4, "XY", "abXYef"},
		{"shrink", "abcdef", 1, 5, "-", "a-f"},
		{"grow", "ab", 1, 1, "XYZ", "aXYZb"},
		{"insert at zero", "abc", 0, 0, ">", ">abc"},
		{"insert at end", "abc", 3, 3, "<", "abc<"},
		{"delete all", "abc", 0, 3, "", ""},
		{"newlines in replacement", "ab", 1, 1, "\n\n", "a\n\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(tt.source)
			s.ReplaceRange(tt.start, tt.end, tt.replacement)
			assert.Equal(t, tt.want, s.Source())
			// The index always equals the canonical recomputation.
			assert.Equal(t, computeLineOffsets(s.Source()), s.lineOffsets)
		})
	}
}

func TestState_ReplaceRange_SequenceKeepsIndexCanonical(t *testing.T) {
	s := NewState("line one\nline two\nline three\n")
	s.ReplaceRange(0, 4, "LINE")
	s.ReplaceRange(9, 17, "l2")
	s.ReplaceRange(11, 11, "\nextra\n")
	assert.Equal(t, computeLineOffsets(s.Source()), s.lineOffsets)
}

func TestState_ReplaceRange_OutOfRangePanics(t *testing.T) {
	// An edit past end-of-source is a bug in the emitting pass.
	assert.Panics(t, func() { NewState("abc").ReplaceRange(0, 4, "x") })
	assert.Panics(t, func() { NewState("abc").ReplaceRange(2, 1, "x") })
}

func TestState_NewStateHasNoTree(t *testing.T) {
	s := NewState("abc")
	assert.False(t, s.HasTree())
	assert.Nil(t, s.Tree())
}
