package cli

import (
	"fmt"
	"os"

	"github.com/corey/fmtkit/engine"
)

// session is the shared setup behind the check and format subcommands:
// loaded config, collected files with their contents (minus cache hits), and
// a live engine.
type session[C any] struct {
	config  C
	files   []string
	codes   []string
	index   map[string]int // path to its position in files/codes
	eng     *engine.Engine[C]
	cache   *Cache
	skipped int
}

func (b *Builder[C]) openSession(configPath, cachePath string, args []string) (*session[C], error) {
	config, err := LoadConfig(configPath, b.defaultConfig)
	if err != nil {
		return nil, err
	}

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	s := &session[C]{config: config, index: make(map[string]int)}

	if cachePath != "" {
		cache, err := OpenCache(cachePath)
		if err != nil {
			return nil, err
		}
		s.cache = cache
	}

	files := CollectFiles(roots, b.provider.Extensions())
	codes, err := ReadFiles(files)
	if err != nil {
		if s.cache != nil {
			s.cache.Close()
		}
		return nil, fmt.Errorf("reading inputs: %w", err)
	}

	for i, path := range files {
		if s.cache != nil && s.cache.IsClean(path, codes[i]) {
			s.skipped++
			continue
		}
		s.index[path] = len(s.files)
		s.files = append(s.files, path)
		s.codes = append(s.codes, codes[i])
	}

	s.eng = engine.New(b.provider, b.pipeline)
	return s, nil
}

// markClean records a file's current in-memory contents as formatted.
func (s *session[C]) markClean(path string) {
	if s.cache == nil || path == "" {
		return
	}
	if i, ok := s.index[path]; ok {
		s.cache.MarkClean(path, s.codes[i])
	}
}

// markCleanOnDisk re-reads the file and records what is actually on disk,
// which after FormatAndWrite is the formatted text.
func (s *session[C]) markCleanOnDisk(path string) {
	if s.cache == nil || path == "" {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	s.cache.MarkClean(path, string(data))
}

func (s *session[C]) close() {
	s.eng.Close()
	if s.cache != nil {
		s.cache.Close()
	}
}
