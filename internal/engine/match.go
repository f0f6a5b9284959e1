package engine

import (
	"regexp"
	"slices"
	"strings"

	"github.com/roach88/crimpfit/internal/catalog"
	"github.com/roach88/crimpfit/internal/selection"
	"github.com/roach88/crimpfit/internal/store"
)

// CrossSections returns the distinct parsed cross sections, ascending.
func CrossSections(st *store.Store) []float64 {
	return st.CrossSections()
}

// StudHoles returns the distinct parsed stud holes, ascending.
func StudHoles(st *store.Store) []float64 {
	return st.StudHoles()
}

// Matches reports whether a connector satisfies the criteria.
func Matches(c catalog.Connector, cr selection.Criteria) bool {
	if cr.Class == "" || !c.HasClass(cr.Class) {
		return false
	}

	abbrev := cr.Material.Abbreviation()
	if abbrev == "" || !slices.ContainsFunc(c.MaterialTokens(), func(tok string) bool {
		return catalog.EqualFold(tok, abbrev)
	}) {
		return false
	}

	if cr.ConnectorType == "" || !catalog.EqualFold(c.Kind, string(cr.ConnectorType)) {
		return false
	}

	if !c.CrossSection.Equal(cr.CrossSection) {
		return false
	}

	if cr.ConnectorType.UsesStudHole() && !c.StudHole.Equal(cr.StudHole) {
		return false
	}

	return true
}

// MatchConnectors returns the connectors satisfying the criteria, in
// catalog order.
func MatchConnectors(st *store.Store, cr selection.Criteria) []catalog.Connector {
	var out []catalog.Connector
	st.EachConnector(func(c catalog.Connector) bool {
		if Matches(c, cr) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// SeriesOf returns the series codes flagged on a connector, in schema order.
func SeriesOf(c catalog.Connector) []catalog.SeriesCode {
	return slices.Clone(c.Series)
}

var serieSuffix = regexp.MustCompile(`(?i) serie$`)

// NormalizeSeries strips a trailing " Serie" suffix, ignoring its case.
// "K50 Serie" and "K50 serie" both become "K50".
func NormalizeSeries(code catalog.SeriesCode) string {
	return serieSuffix.ReplaceAllString(string(code), "")
}

// seriesMatches reports whether tool series text contains any of the
// normalised codes.
func seriesMatches(toolSeries string, normalized []string) bool {
	if toolSeries == "" {
		return false
	}
	return slices.ContainsFunc(normalized, func(code string) bool {
		return strings.Contains(toolSeries, code)
	})
}

// normalizedSeriesOf collects the distinct normalised codes of connectors,
// in first-seen order.
func normalizedSeriesOf(connectors []catalog.Connector) []string {
	var out []string
	for _, c := range connectors {
		for _, code := range c.Series {
			n := NormalizeSeries(code)
			if n != "" && !slices.Contains(out, n) {
				out = append(out, n)
			}
		}
	}
	return out
}

// MatchTools returns the tools whose series text contains a normalised
// series code of any given connector. An empty connector set matches no
// tools; tools with blank series never match.
func MatchTools(connectors []catalog.Connector, st *store.Store) []catalog.Tool {
	codes := normalizedSeriesOf(connectors)
	if len(codes) == 0 {
		return nil
	}

	var out []catalog.Tool
	st.EachTool(func(t catalog.Tool) bool {
		if seriesMatches(t.Series, codes) {
			out = append(out, t)
		}
		return true
	})
	return out
}

// NarrowToolsByConnector returns the tools compatible with one connector.
func NarrowToolsByConnector(c catalog.Connector, st *store.Store) []catalog.Tool {
	return MatchTools([]catalog.Connector{c}, st)
}

// NarrowConnectorsByTool returns the criteria matches sharing a series code
// with the tool. A tool with blank series text does not narrow.
func NarrowConnectorsByTool(t catalog.Tool, st *store.Store, cr selection.Criteria) []catalog.Connector {
	return narrowConnectors(t, MatchConnectors(st, cr))
}

func narrowConnectors(t catalog.Tool, matches []catalog.Connector) []catalog.Connector {
	if t.Series == "" {
		return slices.Clone(matches)
	}

	var out []catalog.Connector
	for _, c := range matches {
		if seriesMatches(t.Series, normalizedSeriesOf([]catalog.Connector{c})) {
			out = append(out, c)
		}
	}
	return out
}
