package store

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/roach88/crimpfit/internal/catalog"
)

// maxSuggestDistance bounds the edit distance for column suggestions.
const maxSuggestDistance = 2

// Load builds a store from connector and tool rows.
//
// Load never fails: rows that cannot contribute are dropped and reported.
// The header of each catalog is taken as the union of the row keys.
func Load(connectorRows, toolRows []Row, schema catalog.Schema) (*Store, *LoadReport) {
	return load(connectorRows, headerOf(connectorRows), toolRows, headerOf(toolRows), schema)
}

func load(connectorRows []Row, connectorHeader []string, toolRows []Row, toolHeader []string, schema catalog.Schema) (*Store, *LoadReport) {
	report := &LoadReport{}

	connectorHeader = dedupeHeader(connectorHeader, CatalogConnectors, report)
	toolHeader = dedupeHeader(toolHeader, CatalogTools, report)
	layout := checkConnectorHeader(connectorHeader, schema, report)
	checkToolHeader(toolHeader, report)

	connectors := decodeConnectors(connectorRows, layout, schema, report)
	tools := decodeTools(toolRows, schema, report)

	report.Connectors = len(connectors)
	report.Tools = len(tools)
	return newStore(schema, connectors, tools), report
}

// columnLayout records which header columns carry which flags.
type columnLayout struct {
	classes map[string]catalog.ConductorClass
	series  map[string]catalog.SeriesCode
}

func headerOf(rows []Row) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rows {
		for k := range r {
			k = catalog.NormalizeHeader(k)
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	sort.Strings(out)
	return out
}

// dedupeHeader drops repeated column names, warning once per repeat. Only
// the first column of a name is read.
func dedupeHeader(header []string, catalogName string, report *LoadReport) []string {
	seen := make(map[string]bool, len(header))
	out := make([]string, 0, len(header))
	for _, col := range header {
		col = catalog.NormalizeHeader(col)
		if col == "" {
			continue
		}
		if seen[col] {
			report.warn(Warning{
				Code:    WarnDuplicateColumn,
				Catalog: catalogName,
				Column:  col,
				Message: fmt.Sprintf("column %q repeated; only the first is read", col),
			})
			continue
		}
		seen[col] = true
		out = append(out, col)
	}
	return out
}

func checkConnectorHeader(header []string, schema catalog.Schema, report *LoadReport) columnLayout {
	layout := columnLayout{
		classes: make(map[string]catalog.ConductorClass),
		series:  make(map[string]catalog.SeriesCode),
	}
	if len(header) == 0 {
		return layout
	}

	fixed := make(map[string]bool, len(catalog.ConnectorColumns))
	for _, c := range catalog.ConnectorColumns {
		fixed[c] = true
	}
	present := make(map[string]bool, len(header))
	known := schema.KnownConnectorColumns()

	for _, col := range header {
		col = catalog.NormalizeHeader(col)
		present[col] = true
		switch {
		case col == "" || fixed[col]:
		case schema.HasSeries(catalog.SeriesCode(col)):
			layout.series[col] = catalog.SeriesCode(col)
		default:
			if class, ok := catalog.ClassFromColumn(col); ok {
				if schema.HasClass(class) {
					layout.classes[col] = class
					continue
				}
				report.warn(Warning{
					Code:    WarnUnknownClass,
					Catalog: CatalogConnectors,
					Column:  col,
					Message: fmt.Sprintf("conductor class %q is not configured; column ignored", class),
				})
				continue
			}
			report.warn(Warning{
				Code:       WarnUnknownColumn,
				Catalog:    CatalogConnectors,
				Column:     col,
				Message:    fmt.Sprintf("unrecognized column %q ignored", col),
				Suggestion: suggest(col, known),
			})
		}
	}

	var missing []string
	for _, c := range []string{catalog.ColPartNumber, catalog.ColMaterial, catalog.ColKind, catalog.ColCrossSection} {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		report.warn(Warning{
			Code:    WarnMissingColumns,
			Catalog: CatalogConnectors,
			Message: fmt.Sprintf("missing columns: %s", strings.Join(missing, ", ")),
		})
	}

	for _, code := range schema.Series {
		if !present[string(code)] {
			report.warn(Warning{
				Code:    WarnMissingSeries,
				Catalog: CatalogConnectors,
				Column:  string(code),
				Message: fmt.Sprintf("series %q has no column", code),
			})
		}
	}

	return layout
}

func checkToolHeader(header []string, report *LoadReport) {
	if len(header) == 0 {
		return
	}
	known := make(map[string]bool, len(catalog.ToolColumns))
	for _, c := range catalog.ToolColumns {
		known[c] = true
	}
	present := make(map[string]bool, len(header))
	for _, col := range header {
		col = catalog.NormalizeHeader(col)
		present[col] = true
		if col == "" || known[col] {
			continue
		}
		report.warn(Warning{
			Code:       WarnUnknownColumn,
			Catalog:    CatalogTools,
			Column:     col,
			Message:    fmt.Sprintf("unrecognized column %q ignored", col),
			Suggestion: suggest(col, catalog.ToolColumns),
		})
	}
	for _, c := range []string{catalog.ColSKU, catalog.ColToolSeries} {
		if !present[c] {
			report.warn(Warning{
				Code:    WarnMissingColumns,
				Catalog: CatalogTools,
				Message: fmt.Sprintf("missing columns: %s", c),
			})
		}
	}
}

// suggest returns the closest known column within maxSuggestDistance.
func suggest(col string, known []string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, k := range known {
		if d := levenshtein.ComputeDistance(strings.ToLower(col), strings.ToLower(k)); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}

// normalizeRow re-keys a row by normalized header names.
func normalizeRow(r Row) Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[catalog.NormalizeHeader(k)] = v
	}
	return out
}

func isBlank(r Row) bool {
	for _, v := range r {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func decodeConnectors(rows []Row, layout columnLayout, schema catalog.Schema, report *LoadReport) []catalog.Connector {
	out := make([]catalog.Connector, 0, len(rows))
	seen := make(map[string]bool, len(rows))

	// Flag columns are visited in schema order so Classes and Series come
	// out in catalog order regardless of header order.
	classCols := make([]string, 0, len(layout.classes))
	for _, class := range schema.Classes {
		if _, ok := layout.classes[class.Column()]; ok {
			classCols = append(classCols, class.Column())
		}
	}
	seriesCols := make([]string, 0, len(layout.series))
	for _, code := range schema.Series {
		if _, ok := layout.series[string(code)]; ok {
			seriesCols = append(seriesCols, string(code))
		}
	}

	for i, raw := range rows {
		if raw == nil || isBlank(raw) {
			report.Blank++
			continue
		}
		r := normalizeRow(raw)
		part := strings.TrimSpace(r[catalog.ColPartNumber])
		if part == "" {
			report.Dropped++
			report.warn(Warning{Code: WarnMissingID, Catalog: CatalogConnectors, Row: i + 1, Message: "row has no part number"})
			continue
		}
		if seen[part] {
			report.Dropped++
			report.warn(Warning{Code: WarnDuplicateID, Catalog: CatalogConnectors, Row: i + 1, Column: catalog.ColPartNumber,
				Message: fmt.Sprintf("duplicate part number %q; first row kept", part)})
			continue
		}
		seen[part] = true

		c := catalog.Connector{
			PartNumber:   part,
			Material:     strings.TrimSpace(r[catalog.ColMaterial]),
			Kind:         strings.TrimSpace(r[catalog.ColKind]),
			CrossSection: catalog.ParseMeasure(r[catalog.ColCrossSection]),
			StudHole:     catalog.ParseMeasure(r[catalog.ColStudHole]),
			ImageURL:     schema.Image(r[catalog.ColImageURL]),
		}
		for _, col := range classCols {
			if schema.IsMarked(r[col]) {
				c.Classes = append(c.Classes, layout.classes[col])
			}
		}
		for _, col := range seriesCols {
			if schema.IsMarked(r[col]) {
				c.Series = append(c.Series, layout.series[col])
			}
		}
		out = append(out, c)
	}
	return out
}

func decodeTools(rows []Row, schema catalog.Schema, report *LoadReport) []catalog.Tool {
	out := make([]catalog.Tool, 0, len(rows))
	seen := make(map[string]bool, len(rows))

	for i, raw := range rows {
		if raw == nil || isBlank(raw) {
			report.Blank++
			continue
		}
		r := normalizeRow(raw)
		sku := strings.TrimSpace(r[catalog.ColSKU])
		if sku == "" {
			report.Dropped++
			report.warn(Warning{Code: WarnMissingID, Catalog: CatalogTools, Row: i + 1, Message: "row has no SKU"})
			continue
		}
		if seen[sku] {
			report.Dropped++
			report.warn(Warning{Code: WarnDuplicateID, Catalog: CatalogTools, Row: i + 1, Column: catalog.ColSKU,
				Message: fmt.Sprintf("duplicate SKU %q; first row kept", sku)})
			continue
		}
		seen[sku] = true

		out = append(out, catalog.Tool{
			SKU:          sku,
			ProductName:  strings.TrimSpace(r[catalog.ColProductName]),
			Series:       r[catalog.ColToolSeries],
			PrimaryImage: schema.Image(r[catalog.ColPrimaryImage]),
			ProductURL:   strings.TrimSpace(r[catalog.ColProductURL]),
		})
	}
	return out
}
