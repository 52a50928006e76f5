package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/fmtkit/jsonfmt"
)

func TestSession_MarkCleanRecordsTheMatchingContents(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.json")
	pathB := filepath.Join(dir, "b.json")
	require.NoError(t, os.WriteFile(pathA, []byte("{\"a\": 1}\n"), 0o644))
	require.NoError(t, os.WriteFile(pathB, []byte("{\"b\": 2}\n"), 0o644))

	b := NewBuilder[jsonfmt.Config]("jsonfmt", jsonfmt.Language{}).
		WithPipeline(jsonfmt.Pipeline()).
		WithDefaultConfig(jsonfmt.DefaultConfig())

	s, err := b.openSession(filepath.Join(dir, "missing.yml"), filepath.Join(dir, "cache.db"), []string{dir})
	require.NoError(t, err)
	defer s.close()
	require.Len(t, s.files, 2)

	// Each path maps to its own contents, not a neighbor's.
	s.markClean(pathB)
	assert.True(t, s.cache.IsClean(pathB, "{\"b\": 2}\n"))
	assert.False(t, s.cache.IsClean(pathA, "{\"a\": 1}\n"))

	// A path outside the session is a no-op.
	s.markClean(filepath.Join(dir, "other.json"))
	assert.False(t, s.cache.IsClean(filepath.Join(dir, "other.json"), ""))
}
