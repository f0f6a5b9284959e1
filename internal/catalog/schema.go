package catalog

import "strings"

// DefaultMarker is the cell value that sets a class or series flag.
const DefaultMarker = "x"

// DefaultPlaceholderImage is shown for records without an image.
const DefaultPlaceholderImage = "assets/no_product_image.png"

// DefaultSeries is the series code catalog of the connector data files,
// in column order.
var DefaultSeries = []SeriesCode{
	"K50 Serie", "K4 serie", "K22 Serie", "K13 Serie",
	"K15 Serie", "K25 Serie", "K5", "K05", "K06",
	"K95", "K09", "K02", "K2", "K93", "K94",
	"EK30IDML", "EK60VP", "EKM60ID", "EK60VPFT", "EK120ID",
}

// DefaultClasses are the IEC 60228 conductor classes offered for selection.
var DefaultClasses = []ConductorClass{"Class 1", "Class 2", "Class 5", "Class 6"}

// Schema is the configured shape of the connector catalog: the series
// columns, the conductor classes on offer, the flag marker and the image
// used for records without one.
type Schema struct {
	Series           []SeriesCode     `json:"series"`
	Classes          []ConductorClass `json:"classes"`
	Marker           string           `json:"marker"`
	PlaceholderImage string           `json:"placeholder_image,omitempty"`
}

// DefaultSchema returns the schema of the shipped data files.
func DefaultSchema() Schema {
	return Schema{
		Series:           append([]SeriesCode(nil), DefaultSeries...),
		Classes:          append([]ConductorClass(nil), DefaultClasses...),
		Marker:           DefaultMarker,
		PlaceholderImage: DefaultPlaceholderImage,
	}
}

// IsMarked reports whether a flag cell is set. The cell is trimmed before
// the exact comparison, so " x" from a padded export still counts where a
// strict cell == "x" check would drop it.
func (s Schema) IsMarked(cell string) bool {
	marker := s.Marker
	if marker == "" {
		marker = DefaultMarker
	}
	return strings.TrimSpace(cell) == marker
}

// Image returns url, or the placeholder image when url is blank.
func (s Schema) Image(url string) string {
	if url = strings.TrimSpace(url); url != "" {
		return url
	}
	return s.PlaceholderImage
}

// HasSeries reports whether code is part of the series catalog.
func (s Schema) HasSeries(code SeriesCode) bool {
	for _, have := range s.Series {
		if have == code {
			return true
		}
	}
	return false
}

// HasClass reports whether class is offered.
func (s Schema) HasClass(class ConductorClass) bool {
	for _, have := range s.Classes {
		if have == class {
			return true
		}
	}
	return false
}

// KnownConnectorColumns returns every column name the schema recognises,
// fixed columns first, then class columns, then series columns.
func (s Schema) KnownConnectorColumns() []string {
	out := make([]string, 0, len(ConnectorColumns)+len(s.Classes)+len(s.Series))
	out = append(out, ConnectorColumns...)
	for _, c := range s.Classes {
		out = append(out, c.Column())
	}
	for _, code := range s.Series {
		out = append(out, string(code))
	}
	return out
}
