package parser

import (
	"path/filepath"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// LanguageProvider binds a tree-sitter grammar to the set of file extensions
// it formats. Implementations are typically zero-sized types invoked only
// for their associated values.
type LanguageProvider interface {
	// Language returns the tree-sitter grammar used to parse source files.
	Language() *tree_sitter.Language

	// Extensions returns the file extensions this language's formatter
	// should process.
	Extensions() *ExtensionSet
}

// ExtensionSet is a fixed collection of supported file extensions,
// lower-case and without the leading dot.
type ExtensionSet struct {
	extensions []string
}

// NewExtensionSet creates a set from the given extensions (lower-case,
// without dots).
func NewExtensionSet(extensions ...string) *ExtensionSet {
	return &ExtensionSet{extensions: extensions}
}

// Contains reports whether the extension (case-insensitive, without dot) is
// in the set.
func (s *ExtensionSet) Contains(extension string) bool {
	ext := strings.ToLower(extension)
	for _, e := range s.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Matches reports whether the path's extension is in the set.
func (s *ExtensionSet) Matches(path string) bool {
	ext := filepath.Ext(path)
	if ext == "" {
		return false
	}
	return s.Contains(strings.TrimPrefix(ext, "."))
}

// Extensions returns the extensions in the set.
func (s *ExtensionSet) Extensions() []string {
	return s.extensions
}
