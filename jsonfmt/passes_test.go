package jsonfmt_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/fmtkit/engine"
	"github.com/corey/fmtkit/jsonfmt"
	"github.com/corey/fmtkit/pipeline"
)

// format runs the full jsonfmt pipeline over one in-memory document.
func format(t *testing.T, config jsonfmt.Config, source string) engine.Outcome {
	t.Helper()
	e := engine.New(jsonfmt.Language{}, jsonfmt.Pipeline())
	defer e.Close()

	outcomes := e.Check(config, []string{source}, []string{""})
	require.Len(t, outcomes, 1)
	return outcomes[0]
}

func TestJSONFmt_CanonicalizesSingleLineObject(t *testing.T) {
	oc := format(t, jsonfmt.DefaultConfig(), `{"b":1,"a":2}`)

	assert.True(t, oc.Changed)
	assert.Contains(t, oc.Diff, `+{"a": 2, "b": 1}`)
}

func TestJSONFmt_AlreadyFormattedIsUnchanged(t *testing.T) {
	oc := format(t, jsonfmt.DefaultConfig(), "{\"a\": 1, \"b\": 2}\n")
	assert.False(t, oc.Changed)
	assert.Empty(t, oc.Diff)
}

func TestJSONFmt_MultiLineObjectKeepsLayout(t *testing.T) {
	source := "{\n  \"b\": 1,\n  \"a\": 2\n}\n"
	oc := format(t, jsonfmt.DefaultConfig(), source)
	// Keys stay unsorted: only single-line objects are canonicalized.
	assert.False(t, oc.Changed)
}

func TestJSONFmt_NestedSingleLineObjectInsideMultiLine(t *testing.T) {
	source := "{\n  \"outer\": {\"z\":1,\"a\":2}\n}\n"
	oc := format(t, jsonfmt.DefaultConfig(), source)

	assert.True(t, oc.Changed)
	assert.Contains(t, oc.Diff, `{"a": 2, "z": 1}`)
}

func TestJSONFmt_DisabledConfigChangesNothing(t *testing.T) {
	oc := format(t, jsonfmt.Config{}, `{"b":1,"a":2}`)
	assert.False(t, oc.Changed)
	assert.Empty(t, oc.Diagnostics)
}

func TestJSONFmt_TrailingNewline(t *testing.T) {
	config := jsonfmt.Config{TrailingNewline: true}

	tests := []struct {
		name    string
		source  string
		changed bool
	}{
		{"missing newline added", `[1]`, true},
		{"extra newlines collapsed", "[1]\n\n\n", true},
		{"single newline kept", "[1]\n", false},
		{"empty file left alone", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oc := format(t, config, tt.source)
			assert.Equal(t, tt.changed, oc.Changed)
		})
	}
}

func TestJSONFmt_ColonSpacingOnly(t *testing.T) {
	config := jsonfmt.Config{SpaceAfterColon: true}

	oc := format(t, config, `{"a":1, "b":  2}`)
	assert.True(t, oc.Changed)
	assert.Contains(t, oc.Diff, `+{"a": 1, "b": 2}`)
}

func TestJSONFmt_ColonSpacingSkipsMultiLineMembers(t *testing.T) {
	config := jsonfmt.Config{SpaceAfterColon: true}

	source := "{\"a\":\n  1}"
	oc := format(t, config, source)
	assert.False(t, oc.Changed)
}

func TestJSONFmt_Idempotent(t *testing.T) {
	e := engine.New(jsonfmt.Language{}, jsonfmt.Pipeline())
	defer e.Close()
	config := jsonfmt.DefaultConfig()

	source := `{"c":3,"a":{"y":2,"x":1},"b":[1,2]}`
	first := e.Check(config, []string{source}, []string{""})
	require.Len(t, first, 1)
	require.True(t, first[0].Changed)

	// Feed the formatted text back through; it must reach a fixed point.
	formatted := applyDiffTarget(t, e, config, source)
	second := e.Check(config, []string{formatted}, []string{""})
	require.Len(t, second, 1)
	assert.False(t, second[0].Changed)
}

// applyDiffTarget formats source in memory and returns the final text by
// round-tripping through a throwaway file.
func applyDiffTarget(t *testing.T, e *engine.Engine[jsonfmt.Config], config jsonfmt.Config, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.json")
	_, err := e.FormatAndWrite(config, []string{source}, []string{path})
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestJSONFmt_MalformedObjectKeepsContent(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"member missing value", `{"b":1,"a":}`},
		{"member missing colon", `{"b":1,"a"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := engine.New(jsonfmt.Language{}, jsonfmt.Pipeline())
			defer e.Close()

			// The broken member must survive on disk instead of being dropped
			// by a canonical rebuild of its object.
			formatted := applyDiffTarget(t, e, jsonfmt.DefaultConfig(), tt.source)
			assert.Contains(t, formatted, `"a"`)
			assert.Contains(t, formatted, `"b"`)

			oc := format(t, jsonfmt.DefaultConfig(), tt.source)
			warned := false
			for _, d := range oc.Diagnostics {
				if d.Severity == pipeline.SeverityWarning && d.Source == "syntax-check" {
					warned = true
				}
			}
			assert.True(t, warned, "expected a syntax warning")
		})
	}
}

func TestJSONFmt_SortKeysExtractSkipsEmptyObjects(t *testing.T) {
	oc := format(t, jsonfmt.DefaultConfig(), "{}\n")
	assert.False(t, oc.Changed)
}

func TestJSONFmt_PassNames(t *testing.T) {
	assert.Equal(t, "syntax-check", jsonfmt.SyntaxCheckPass{}.PassName())
	assert.Equal(t, "colon-spacing", jsonfmt.ColonSpacingPass{}.PassName())
	assert.Equal(t, "sort-keys", jsonfmt.SortKeysPass{}.PassName())
	assert.Equal(t, "trailing-newline", jsonfmt.TrailingNewlinePass{}.PassName())

	named, ok := pipeline.Structured[jsonfmt.Config, jsonfmt.Member](jsonfmt.SortKeysPass{}).(pipeline.NamedPass)
	require.True(t, ok)
	assert.Equal(t, "sort-keys", named.PassName())
}
