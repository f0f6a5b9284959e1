package catalog

import (
	"fmt"
	"strings"
)

// Material is the conductor material a connector must accept.
type Material string

const (
	Copper    Material = "Copper"
	Aluminium Material = "Aluminium"
)

// Materials lists the valid materials in display order.
var Materials = []Material{Copper, Aluminium}

// Abbreviation returns the token used in the connecting-material column.
func (m Material) Abbreviation() string {
	switch m {
	case Copper:
		return "CU"
	case Aluminium:
		return "AL"
	default:
		return ""
	}
}

// Valid reports whether m is one of Materials.
func (m Material) Valid() bool {
	return m.Abbreviation() != ""
}

// ParseMaterial accepts a material name or its abbreviation, ignoring case.
func ParseMaterial(s string) (Material, error) {
	s = strings.TrimSpace(s)
	for _, m := range Materials {
		if EqualFold(s, string(m)) || EqualFold(s, m.Abbreviation()) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown material %q: must be one of %v", s, Materials)
}

// ConnectorType is the kind of connection a user is looking for.
type ConnectorType string

const (
	TypeCableLug    ConnectorType = "Cable Lug"
	TypeConnector   ConnectorType = "Connector"
	TypeWireFerrule ConnectorType = "Wire Ferrule"
)

// ConnectorTypes lists the valid connector types in display order.
var ConnectorTypes = []ConnectorType{TypeCableLug, TypeConnector, TypeWireFerrule}

// Valid reports whether t is one of ConnectorTypes.
func (t ConnectorType) Valid() bool {
	for _, have := range ConnectorTypes {
		if have == t {
			return true
		}
	}
	return false
}

// UsesStudHole reports whether the stud hole takes part in matching.
func (t ConnectorType) UsesStudHole() bool {
	return t == TypeCableLug
}

// ParseConnectorType matches a connector type name, ignoring case.
func ParseConnectorType(s string) (ConnectorType, error) {
	s = strings.TrimSpace(s)
	for _, t := range ConnectorTypes {
		if EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown connector type %q: must be one of %v", s, ConnectorTypes)
}
