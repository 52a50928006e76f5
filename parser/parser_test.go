package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	ts_json "github.com/tree-sitter/tree-sitter-json/bindings/go"
)

// jsonProvider binds the JSON grammar for tests; the framework itself is
// language-agnostic.
type jsonProvider struct{}

func (jsonProvider) Language() *tree_sitter.Language {
	return tree_sitter.NewLanguage(ts_json.Language())
}

func (jsonProvider) Extensions() *ExtensionSet {
	return NewExtensionSet("json")
}

func TestParser_ParseAssignsTree(t *testing.T) {
	p := New(jsonProvider{})
	defer p.Close()

	state := NewState(`{"a": 1}`)
	defer state.Close()

	p.Parse(state)
	require.True(t, state.HasTree())
	assert.Equal(t, "document", state.Tree().RootNode().Kind())
	assert.Equal(t, state.Len(), state.Tree().RootNode().EndByte())
}

func TestParser_ParseEmptySource(t *testing.T) {
	p := New(jsonProvider{})
	defer p.Close()

	state := NewState("")
	defer state.Close()

	p.Parse(state)
	require.True(t, state.HasTree())
	assert.Equal(t, uint(0), state.Tree().RootNode().EndByte())
}

func TestParser_ReparseWithoutTreeIsFullParse(t *testing.T) {
	p := New(jsonProvider{})
	defer p.Close()

	state := NewState(`[1, 2]`)
	defer state.Close()

	p.Reparse(state)
	require.True(t, state.HasTree())
	assert.Equal(t, "document", state.Tree().RootNode().Kind())
}

func TestParser_ApplyEditKeepsTreeCoherent(t *testing.T) {
	p := New(jsonProvider{})
	defer p.Close()

	state := NewState(`{"key": "value"}`)
	defer state.Close()
	p.Parse(state)

	// Replace "value" (bytes 9..14, inside the quotes) with "other".
	p.ApplyEdit(state, 9, 14, "other")
	assert.Equal(t, `{"key": "other"}`, state.Source())

	p.Reparse(state)
	root := state.Tree().RootNode()
	assert.Equal(t, "document", root.Kind())
	assert.Equal(t, state.Len(), root.EndByte())
	assert.False(t, root.HasError())
}

func TestParser_ApplyEditAcrossLines(t *testing.T) {
	p := New(jsonProvider{})
	defer p.Close()

	state := NewState("{\n  \"a\": 1,\n  \"b\": 2\n}\n")
	defer state.Close()
	p.Parse(state)

	// Delete the whole second member line, newline included.
	start := uint(len("{\n  \"a\": 1,\n"))
	end := uint(len("{\n  \"a\": 1,\n  \"b\": 2\n"))
	p.ApplyEdit(state, start, end, "")
	p.Reparse(state)

	assert.Equal(t, "{\n  \"a\": 1,\n}\n", state.Source())
	assert.Equal(t, state.Len(), state.Tree().RootNode().EndByte())
}

func TestParser_ApplyEditWithoutTree(t *testing.T) {
	// ApplyEdit on an unparsed state is a plain text splice.
	p := New(jsonProvider{})
	defer p.Close()

	state := NewState("[]")
	defer state.Close()

	p.ApplyEdit(state, 1, 1, "1")
	assert.Equal(t, "[1]", state.Source())
	assert.False(t, state.HasTree())
}

func TestExtensionSet(t *testing.T) {
	set := NewExtensionSet("json", "jsonc")

	assert.True(t, set.Contains("json"))
	assert.True(t, set.Contains("JSON"))
	assert.False(t, set.Contains("yaml"))

	assert.True(t, set.Matches("data.json"))
	assert.True(t, set.Matches("/some/dir/config.JSONC"))
	assert.False(t, set.Matches("noext"))
	assert.False(t, set.Matches("file.yml"))
}
