package engine

import (
	"github.com/pmezard/go-difflib/difflib"
)

// unifiedDiff renders a line-based unified diff from original to formatted
// with three lines of context. Returns "" when the inputs are byte-for-byte
// equal.
func unifiedDiff(original, formatted string) string {
	if original == formatted {
		return ""
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(formatted),
		FromFile: "original",
		ToFile:   "formatted",
		Context:  3,
	})
	if err != nil {
		// difflib only errors on writer failures; a strings.Builder never fails.
		return ""
	}
	return text
}
