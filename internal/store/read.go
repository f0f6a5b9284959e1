package store

import (
	"slices"

	"github.com/roach88/crimpfit/internal/catalog"
)

// Schema returns the catalog schema the store was loaded with.
func (s *Store) Schema() catalog.Schema {
	return s.schema
}

// Connectors returns all connectors in catalog order.
// The returned slice is a copy; callers may modify it.
func (s *Store) Connectors() []catalog.Connector {
	return slices.Clone(s.connectors)
}

// Tools returns all tools in catalog order.
// The returned slice is a copy; callers may modify it.
func (s *Store) Tools() []catalog.Tool {
	return slices.Clone(s.tools)
}

// Connector looks up a connector by part number.
func (s *Store) Connector(partNumber string) (catalog.Connector, bool) {
	i, ok := s.byPart[partNumber]
	if !ok {
		return catalog.Connector{}, false
	}
	return s.connectors[i], true
}

// Tool looks up a tool by SKU.
func (s *Store) Tool(sku string) (catalog.Tool, bool) {
	i, ok := s.bySKU[sku]
	if !ok {
		return catalog.Tool{}, false
	}
	return s.tools[i], true
}

// CrossSections returns the distinct nominal cross sections, ascending.
func (s *Store) CrossSections() []float64 {
	return slices.Clone(s.crossSections)
}

// StudHoles returns the distinct stud holes, ascending.
func (s *Store) StudHoles() []float64 {
	return slices.Clone(s.studHoles)
}

// Len returns the number of connectors and tools.
func (s *Store) Len() (connectors, tools int) {
	return len(s.connectors), len(s.tools)
}

// IsEmpty reports whether the store holds no connectors.
func (s *Store) IsEmpty() bool {
	return len(s.connectors) == 0
}

// Fingerprint identifies the loaded content.
func (s *Store) Fingerprint() string {
	return s.fingerprint
}

// EachConnector calls fn for each connector in catalog order without
// copying the catalog. Iteration stops when fn returns false.
func (s *Store) EachConnector(fn func(catalog.Connector) bool) {
	for _, c := range s.connectors {
		if !fn(c) {
			return
		}
	}
}

// EachTool calls fn for each tool in catalog order without copying the
// catalog. Iteration stops when fn returns false.
func (s *Store) EachTool(fn func(catalog.Tool) bool) {
	for _, t := range s.tools {
		if !fn(t) {
			return
		}
	}
}
