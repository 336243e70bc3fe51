package filter

import "golang.org/x/text/cases"

// foldCaser performs Unicode-correct case folding for $search terms (which
// are arbitrary user text, not just ASCII), replacing a naive strings.ToLower
// that would mishandle e.g. Turkish dotless-i or German sharp-s.
var foldCaser = cases.Fold()

// FoldCase normalizes s for case-insensitive comparison. ParseURL applies it
// to the $search term as it's captured, and the gormapply adapter applies it
// again to the term when building the LIKE pattern; the column side of that
// LIKE is lowered with SQL LOWER(), not with FoldCase.
func FoldCase(s string) string {
	return foldCaser.String(s)
}
