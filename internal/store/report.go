package store

import "fmt"

// Warning codes (W001-W099)
const (
	WarnUnknownColumn   = "W001" // column not in the schema
	WarnUnknownClass    = "W002" // class flag column for a class that is not offered
	WarnMissingSeries   = "W003" // configured series code has no column
	WarnDuplicateID     = "W004" // part number or SKU seen before
	WarnMissingID       = "W005" // row without part number or SKU
	WarnMissingColumns  = "W006" // required column absent from the header
	WarnDuplicateColumn = "W007" // column name repeated in the header
)

// Catalog names used in warnings.
const (
	CatalogConnectors = "connectors"
	CatalogTools      = "tools"
)

// Warning describes a non-fatal problem found while loading.
type Warning struct {
	Code       string `json:"code"`
	Catalog    string `json:"catalog"`
	Row        int    `json:"row,omitempty"` // 1-based data row; 0 for header problems
	Column     string `json:"column,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (w Warning) String() string {
	loc := w.Catalog
	if w.Row > 0 {
		loc = fmt.Sprintf("%s row %d", w.Catalog, w.Row)
	}
	msg := fmt.Sprintf("[%s] %s: %s", w.Code, loc, w.Message)
	if w.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", w.Suggestion)
	}
	return msg
}

// LoadReport summarises a load.
type LoadReport struct {
	Connectors int       `json:"connectors"`
	Tools      int       `json:"tools"`
	Blank      int       `json:"blank_rows"`
	Dropped    int       `json:"dropped_rows"`
	Warnings   []Warning `json:"warnings,omitempty"`
}

func (r *LoadReport) warn(w Warning) {
	r.Warnings = append(r.Warnings, w)
}

// HasWarnings reports whether any warning was recorded.
func (r *LoadReport) HasWarnings() bool {
	return r != nil && len(r.Warnings) > 0
}
