package cli

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/corey/fmtkit/parser"
)

// Directories skipped during collection. Editors, VCS, and build output
// never hold files a formatter should touch.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"target":       true,
	".idea":        true,
	".vscode":      true,
}

// CollectFiles expands the argument paths into the sorted list of files the
// provider's extensions match. Directories are walked recursively; files
// named explicitly are kept only when they match. Inaccessible entries are
// skipped silently; a formatter run should not die on a permission hole.
func CollectFiles(paths []string, extensions *parser.ExtensionSet) []string {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			if extensions.Matches(root) {
				add(root)
			}
			continue
		}

		filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if skipDirs[d.Name()] && path != root {
					return filepath.SkipDir
				}
				return nil
			}
			if extensions.Matches(path) {
				add(path)
			}
			return nil
		})
	}

	sort.Strings(files)
	return files
}

// ReadFiles reads every file into memory, preserving order. The engine
// operates on in-memory strings, so all candidates load up front.
func ReadFiles(files []string) ([]string, error) {
	contents := make([]string, len(files))
	for i, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		contents[i] = string(data)
	}
	return contents, nil
}
