package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// EqualFold compares two strings under Unicode case folding.
// A Caser is stateful, so one is created per call.
func EqualFold(a, b string) bool {
	fold := cases.Fold()
	return fold.String(a) == fold.String(b)
}

// NormalizeHeader trims a column header and converts it to NFC, so a
// "mm²" typed with a combining sequence still finds its column.
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return norm.NFC.String(strings.TrimSpace(h))
}
