package engine

import (
	"strings"

	"github.com/roach88/crimpfit/internal/catalog"
)

// Overlap is a pair of series codes where the normalised Inner code is a
// substring of the normalised Outer code. Tools listing Outer also match
// connectors flagged with Inner.
type Overlap struct {
	Inner catalog.SeriesCode `json:"inner"`
	Outer catalog.SeriesCode `json:"outer"`
}

// OverlappingSeries reports every overlapping pair in codes, ordered by
// the position of Inner and then Outer.
func OverlappingSeries(codes []catalog.SeriesCode) []Overlap {
	var out []Overlap
	for _, inner := range codes {
		in := NormalizeSeries(inner)
		if in == "" {
			continue
		}
		for _, outer := range codes {
			o := NormalizeSeries(outer)
			if o == in {
				continue
			}
			if strings.Contains(o, in) {
				out = append(out, Overlap{Inner: inner, Outer: outer})
			}
		}
	}
	return out
}
