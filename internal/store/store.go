package store

import (
	"slices"

	"github.com/roach88/crimpfit/internal/catalog"
)

// Row is one tabular record, column name to cell text.
type Row map[string]string

// Store holds the connector and tool catalogs.
type Store struct {
	schema     catalog.Schema
	connectors []catalog.Connector
	tools      []catalog.Tool

	byPart map[string]int
	bySKU  map[string]int

	crossSections []float64
	studHoles     []float64
	fingerprint   string
}

// Empty returns a store with no records. Every query on it returns an
// empty result.
func Empty(schema catalog.Schema) *Store {
	return newStore(schema, nil, nil)
}

func newStore(schema catalog.Schema, connectors []catalog.Connector, tools []catalog.Tool) *Store {
	s := &Store{
		schema:     schema,
		connectors: connectors,
		tools:      tools,
		byPart:     make(map[string]int, len(connectors)),
		bySKU:      make(map[string]int, len(tools)),
	}
	for i, c := range connectors {
		s.byPart[c.PartNumber] = i
	}
	for i, t := range tools {
		s.bySKU[t.SKU] = i
	}
	s.crossSections = distinctSorted(connectors, func(c catalog.Connector) catalog.Measure { return c.CrossSection })
	s.studHoles = distinctSorted(connectors, func(c catalog.Connector) catalog.Measure { return c.StudHole })

	// Fingerprint only fails on unmarshalable values, which catalog types
	// never contain.
	s.fingerprint, _ = catalog.Fingerprint(schema, connectors, tools)
	return s
}

// distinctSorted collects the present values of a measure, deduplicated by
// parsed value and sorted ascending.
func distinctSorted(connectors []catalog.Connector, field func(catalog.Connector) catalog.Measure) []float64 {
	var out []float64
	for _, c := range connectors {
		if m := field(c); m.Valid {
			out = append(out, m.Value)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
