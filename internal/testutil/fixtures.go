// Package testutil provides catalog fixtures shared by package tests.
package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/crimpfit/internal/catalog"
	"github.com/roach88/crimpfit/internal/store"
)

// Connector describes one connector row. Empty fields become empty cells.
type Connector struct {
	PartNumber   string
	Material     string
	Kind         string
	CrossSection string
	StudHole     string
	ImageURL     string
	Classes      []string
	Series       []string
}

// Row renders the connector as a row of the default schema.
func (c Connector) Row() store.Row {
	return c.RowFor(catalog.DefaultSchema())
}

// RowFor renders the connector with every class and series column of the
// schema present, flags set to the schema marker.
func (c Connector) RowFor(schema catalog.Schema) store.Row {
	marker := schema.Marker
	if marker == "" {
		marker = catalog.DefaultMarker
	}
	r := store.Row{
		catalog.ColPartNumber:   c.PartNumber,
		catalog.ColMaterial:     c.Material,
		catalog.ColKind:         c.Kind,
		catalog.ColCrossSection: c.CrossSection,
		catalog.ColStudHole:     c.StudHole,
		catalog.ColImageURL:     c.ImageURL,
	}
	for _, class := range schema.Classes {
		r[class.Column()] = ""
	}
	for _, code := range schema.Series {
		r[string(code)] = ""
	}
	for _, class := range c.Classes {
		r[catalog.ConductorClass(class).Column()] = marker
	}
	for _, code := range c.Series {
		r[code] = marker
	}
	return r
}

// Tool describes one tool row.
type Tool struct {
	SKU         string
	ProductName string
	Series      string
}

// Row renders the tool as a catalog row.
func (t Tool) Row() store.Row {
	return store.Row{
		catalog.ColSKU:          t.SKU,
		catalog.ColToolSeries:   t.Series,
		catalog.ColProductName:  t.ProductName,
		catalog.ColPrimaryImage: "",
		catalog.ColProductURL:   "",
	}
}

// NewStore loads fixtures with the default schema and fails the test on
// any load warning.
func NewStore(t testing.TB, connectors []Connector, tools []Tool) *store.Store {
	t.Helper()

	connRows := make([]store.Row, len(connectors))
	for i, c := range connectors {
		connRows[i] = c.Row()
	}
	toolRows := make([]store.Row, len(tools))
	for i, tl := range tools {
		toolRows[i] = tl.Row()
	}

	st, report := store.Load(connRows, toolRows, catalog.DefaultSchema())
	require.False(t, report.HasWarnings(), "fixture load warnings: %v", report.Warnings)
	return st
}

// Example connectors A and B differ only in stud hole; A is flagged for
// the K50 series.
var (
	ConnectorA = Connector{
		PartNumber: "A", Material: "CU", Kind: "Cable Lug",
		CrossSection: "16", StudHole: "8",
		Classes: []string{"Class 2"}, Series: []string{"K50 Serie"},
	}
	ConnectorB = Connector{
		PartNumber: "B", Material: "CU", Kind: "Cable Lug",
		CrossSection: "16", StudHole: "10",
		Classes: []string{"Class 2"},
	}
	ToolT1 = Tool{SKU: "T1", ProductName: "Crimp tool K50", Series: "K50/K4"}
	ToolT2 = Tool{SKU: "T2", ProductName: "Crimp tool K22", Series: "K22"}
)

// ExampleStore holds connectors A and B and tools T1 and T2.
func ExampleStore(t testing.TB) *store.Store {
	return NewStore(t, []Connector{ConnectorA, ConnectorB}, []Tool{ToolT1, ToolT2})
}

// DiscardLogger returns a logger that drops all records.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
