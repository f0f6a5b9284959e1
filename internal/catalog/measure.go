package catalog

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Measure is an optional numeric catalog value (mm² or mm).
// The zero Measure is absent.
type Measure struct {
	Value float64
	Valid bool
}

// Of returns a present Measure.
func Of(v float64) Measure {
	return Measure{Value: v, Valid: true}
}

// Equal reports whether both measures are present and numerically equal.
// An absent measure equals nothing, including another absent measure.
func (m Measure) Equal(o Measure) bool {
	return m.Valid && o.Valid && m.Value == o.Value
}

func (m Measure) String() string {
	if !m.Valid {
		return "-"
	}
	return strconv.FormatFloat(m.Value, 'f', -1, 64)
}

// MarshalJSON encodes an absent measure as null.
func (m Measure) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON accepts a number or null.
func (m *Measure) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Measure{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Of(v)
	return nil
}

var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseMeasure parses the leading decimal number of s, so "16", " 16.0 "
// and "16 mm" all yield 16. Text without a leading number is absent.
//
// A decimal comma is not a separator: "1,5" yields 1.
func ParseMeasure(s string) Measure {
	s = strings.TrimSpace(s)
	if s == "" {
		return Measure{}
	}
	prefix := numericPrefix.FindString(s)
	if prefix == "" {
		return Measure{}
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return Measure{}
	}
	return Of(v)
}
