package engine

import (
	"strings"

	"github.com/roach88/crimpfit/internal/catalog"
)

// SearchConnectors filters connectors by a case-insensitive substring of
// the part number or connecting material. An empty query returns all.
func SearchConnectors(connectors []catalog.Connector, query string) []catalog.Connector {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]catalog.Connector(nil), connectors...)
	}
	var out []catalog.Connector
	for _, c := range connectors {
		if containsFold(c.PartNumber, q) || containsFold(c.Material, q) {
			out = append(out, c)
		}
	}
	return out
}

// SearchTools filters tools by a case-insensitive substring of the SKU or
// product name. An empty query returns all.
func SearchTools(tools []catalog.Tool, query string) []catalog.Tool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]catalog.Tool(nil), tools...)
	}
	var out []catalog.Tool
	for _, t := range tools {
		if containsFold(t.SKU, q) || containsFold(t.ProductName, q) {
			out = append(out, t)
		}
	}
	return out
}

func containsFold(s, lowered string) bool {
	return strings.Contains(strings.ToLower(s), lowered)
}
