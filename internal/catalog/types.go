package catalog

import (
	"regexp"
	"strings"
)

// Column names of the connector catalog.
const (
	ColPartNumber   = "Part No."
	ColMaterial     = "Connecting material"
	ColKind         = "Kind of connection"
	ColCrossSection = "Nominal cross section mm²"
	ColStudHole     = "Stud hole"
	ColImageURL     = "Image URL"

	// ClassColumnPrefix precedes the class name in a class flag column,
	// e.g. "Cable Class 2".
	ClassColumnPrefix = "Cable "
)

// Column names of the tool catalog.
const (
	ColSKU          = "SKU"
	ColToolSeries   = "Tool Series"
	ColProductName  = "Product Name"
	ColPrimaryImage = "Primary Image"
	ColProductURL   = "Product URL"
)

// ConnectorColumns lists the fixed (non-flag) connector columns.
var ConnectorColumns = []string{
	ColPartNumber, ColMaterial, ColKind, ColCrossSection, ColStudHole, ColImageURL,
}

// ToolColumns lists the known tool columns.
var ToolColumns = []string{
	ColSKU, ColToolSeries, ColProductName, ColPrimaryImage, ColProductURL,
}

// SeriesCode names a tool-series column in the connector catalog,
// e.g. "K50 Serie" or "EK60VP".
type SeriesCode string

// ConductorClass names a conductor class, e.g. "Class 2".
type ConductorClass string

// Column returns the connector column carrying this class flag.
func (c ConductorClass) Column() string {
	return ClassColumnPrefix + string(c)
}

var classPattern = regexp.MustCompile(`Class \d+`)

// ClassFromColumn extracts the class from a "Cable Class N" column name.
// Returns false for any other column.
func ClassFromColumn(column string) (ConductorClass, bool) {
	if !strings.HasPrefix(column, ClassColumnPrefix) {
		return "", false
	}
	rest := strings.TrimPrefix(column, ClassColumnPrefix)
	if classPattern.FindString(rest) != rest {
		return "", false
	}
	return ConductorClass(rest), true
}

// FindClass returns the first "Class N" token in a free-text label such as
// "Class 2Multi-Stranded".
func FindClass(label string) (ConductorClass, bool) {
	m := classPattern.FindString(label)
	if m == "" {
		return "", false
	}
	return ConductorClass(m), true
}

// Connector is one row of the connector catalog.
type Connector struct {
	PartNumber   string           `json:"part_number"`
	Material     string           `json:"connecting_material"`
	Kind         string           `json:"kind_of_connection"`
	CrossSection Measure          `json:"cross_section"`
	StudHole     Measure          `json:"stud_hole"`
	Classes      []ConductorClass `json:"classes"`
	Series       []SeriesCode     `json:"series"`
	ImageURL     string           `json:"image_url,omitempty"`
}

// HasClass reports whether the connector is flagged for the class.
func (c *Connector) HasClass(class ConductorClass) bool {
	for _, have := range c.Classes {
		if have == class {
			return true
		}
	}
	return false
}

// HasSeries reports whether the connector is flagged for the series code.
func (c *Connector) HasSeries(code SeriesCode) bool {
	for _, have := range c.Series {
		if have == code {
			return true
		}
	}
	return false
}

var tokenSeparator = regexp.MustCompile(`[,\s]+`)

// MaterialTokens splits the connecting-material text into tokens.
// "CU, AL" yields ["CU", "AL"].
func (c *Connector) MaterialTokens() []string {
	var out []string
	for _, tok := range tokenSeparator.Split(c.Material, -1) {
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// Tool is one row of the tool catalog.
type Tool struct {
	SKU          string `json:"sku"`
	ProductName  string `json:"product_name"`
	Series       string `json:"tool_series"`
	PrimaryImage string `json:"primary_image,omitempty"`
	ProductURL   string `json:"product_url,omitempty"`
}
