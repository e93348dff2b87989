package domain

import (
	"github.com/pmezard/go-difflib/difflib"

	m "forgeguard.dev/pkg/forgeguard/internal/model"
)

// unifiedDiff renders the change a dry run would have written.
func unifiedDiff(path m.Path, before, after []byte) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: "a/" + string(path),
		ToFile:   "b/" + string(path),
		Context:  2,
	})
}
