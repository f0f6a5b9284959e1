package selection

import (
	"slices"
	"strconv"

	"github.com/roach88/crimpfit/internal/catalog"
	"github.com/roach88/crimpfit/internal/store"
)

// PinKind is the pin state of a selection.
type PinKind string

const (
	PinNone      PinKind = "none"
	PinConnector PinKind = "connector"
	PinTool      PinKind = "tool"
)

// Domain is the set of values a selection may take.
type Domain struct {
	Classes       []catalog.ConductorClass
	CrossSections []float64
	StudHoles     []float64
}

// DomainOf returns the domain offered by a loaded catalog.
func DomainOf(st *store.Store) Domain {
	return Domain{
		Classes:       st.Schema().Classes,
		CrossSections: st.CrossSections(),
		StudHoles:     st.StudHoles(),
	}
}

// Criteria is a snapshot of the filter criteria. It is comparable and
// used as a cache key.
type Criteria struct {
	Material      catalog.Material       `json:"material"`
	Class         catalog.ConductorClass `json:"class"`
	ConnectorType catalog.ConnectorType  `json:"connector_type"`
	CrossSection  catalog.Measure        `json:"cross_section"`
	StudHole      catalog.Measure        `json:"stud_hole"`
}

// State is the mutable selection owned by one adapter.
// Not safe for concurrent use.
type State struct {
	domain   Domain
	criteria Criteria

	pin             PinKind
	pinnedConnector string
	pinnedTool      string
}

// New creates a State from validated defaults.
func New(defaults Defaults, domain Domain) (*State, error) {
	if err := defaults.Validate(); err != nil {
		return nil, err
	}

	s := &State{domain: domain, pin: PinNone}
	s.criteria.Material = catalog.Material(defaults.Material)
	s.criteria.ConnectorType = catalog.ConnectorType(defaults.ConnectorType)

	class := catalog.ConductorClass(defaults.Class)
	if !slices.Contains(domain.Classes, class) {
		return nil, invalid(ErrInvalidClass, "defaults.Class", defaults.Class,
			"class is not offered (have %v)", domain.Classes)
	}
	s.criteria.Class = class

	cs, err := initialMeasure(defaults.CrossSection, domain.CrossSections,
		ErrInvalidCrossSection, "defaults.CrossSection")
	if err != nil {
		return nil, err
	}
	s.criteria.CrossSection = cs

	sh, err := initialMeasure(defaults.StudHole, domain.StudHoles,
		ErrInvalidStudHole, "defaults.StudHole")
	if err != nil {
		return nil, err
	}
	s.criteria.StudHole = sh

	return s, nil
}

func initialMeasure(v *float64, set []float64, code, field string) (catalog.Measure, error) {
	if v == nil {
		if len(set) == 0 {
			return catalog.Measure{}, nil
		}
		return catalog.Of(set[0]), nil
	}
	if !slices.Contains(set, *v) {
		return catalog.Measure{}, invalid(code, field, formatFloat(*v),
			"value is not offered (have %v)", set)
	}
	return catalog.Of(*v), nil
}

// Criteria returns the current criteria.
func (s *State) Criteria() Criteria { return s.criteria }

// Domain returns the domain the state validates against.
func (s *State) Domain() Domain { return s.domain }

// Pin returns the current pin state.
func (s *State) Pin() PinKind { return s.pin }

// PinnedConnector returns the pinned part number, if a connector is pinned.
func (s *State) PinnedConnector() (string, bool) {
	return s.pinnedConnector, s.pin == PinConnector
}

// PinnedTool returns the pinned SKU, if a tool is pinned.
func (s *State) PinnedTool() (string, bool) {
	return s.pinnedTool, s.pin == PinTool
}

// update applies a criteria change and clears the pin if anything changed.
func (s *State) update(next Criteria) {
	if next == s.criteria {
		return
	}
	s.criteria = next
	s.Unpin()
}

// SetMaterial selects the material.
func (s *State) SetMaterial(m catalog.Material) error {
	if !m.Valid() {
		return invalid(ErrInvalidMaterial, "material", string(m),
			"must be one of %v", catalog.Materials)
	}
	next := s.criteria
	next.Material = m
	s.update(next)
	return nil
}

// SetConductorClass selects the conductor class.
func (s *State) SetConductorClass(c catalog.ConductorClass) error {
	if !slices.Contains(s.domain.Classes, c) {
		return invalid(ErrInvalidClass, "class", string(c),
			"must be one of %v", s.domain.Classes)
	}
	next := s.criteria
	next.Class = c
	s.update(next)
	return nil
}

// SetConnectorType selects the connector type.
func (s *State) SetConnectorType(t catalog.ConnectorType) error {
	if !t.Valid() {
		return invalid(ErrInvalidConnectorType, "connector_type", string(t),
			"must be one of %v", catalog.ConnectorTypes)
	}
	next := s.criteria
	next.ConnectorType = t
	s.update(next)
	return nil
}

// SetCrossSection selects a cross section from the derived set.
func (s *State) SetCrossSection(v float64) error {
	if !slices.Contains(s.domain.CrossSections, v) {
		return invalid(ErrInvalidCrossSection, "cross_section", formatFloat(v),
			"must be one of %v", s.domain.CrossSections)
	}
	next := s.criteria
	next.CrossSection = catalog.Of(v)
	s.update(next)
	return nil
}

// SetStudHole selects a stud hole from the derived set.
func (s *State) SetStudHole(v float64) error {
	if !slices.Contains(s.domain.StudHoles, v) {
		return invalid(ErrInvalidStudHole, "stud_hole", formatFloat(v),
			"must be one of %v", s.domain.StudHoles)
	}
	next := s.criteria
	next.StudHole = catalog.Of(v)
	s.update(next)
	return nil
}

// SetCrossSectionIndex selects the i-th derived cross section.
func (s *State) SetCrossSectionIndex(i int) error {
	if i < 0 || i >= len(s.domain.CrossSections) {
		return invalid(ErrInvalidCrossSection, "cross_section_index", strconv.Itoa(i),
			"index out of range [0,%d)", len(s.domain.CrossSections))
	}
	return s.SetCrossSection(s.domain.CrossSections[i])
}

// SetStudHoleIndex selects the i-th derived stud hole.
func (s *State) SetStudHoleIndex(i int) error {
	if i < 0 || i >= len(s.domain.StudHoles) {
		return invalid(ErrInvalidStudHole, "stud_hole_index", strconv.Itoa(i),
			"index out of range [0,%d)", len(s.domain.StudHoles))
	}
	return s.SetStudHole(s.domain.StudHoles[i])
}

// PinConnector pins a connector by part number, replacing any pin.
// Membership in the current results is checked by the engine session.
func (s *State) PinConnector(partNumber string) error {
	if partNumber == "" {
		return invalid(ErrInvalidPin, "connector", partNumber, "part number is required")
	}
	s.pin = PinConnector
	s.pinnedConnector = partNumber
	s.pinnedTool = ""
	return nil
}

// PinTool pins a tool by SKU, replacing any pin.
func (s *State) PinTool(sku string) error {
	if sku == "" {
		return invalid(ErrInvalidPin, "tool", sku, "SKU is required")
	}
	s.pin = PinTool
	s.pinnedTool = sku
	s.pinnedConnector = ""
	return nil
}

// Unpin returns to PinNone.
func (s *State) Unpin() {
	s.pin = PinNone
	s.pinnedConnector = ""
	s.pinnedTool = ""
}

// Reopen clears the pin when kind is the pinned side. Reopening the other
// side keeps the pin.
func (s *State) Reopen(kind PinKind) error {
	switch kind {
	case PinConnector, PinTool:
		if s.pin == kind {
			s.Unpin()
		}
		return nil
	default:
		return invalid(ErrInvalidPin, "reopen", string(kind),
			"must be %q or %q", PinConnector, PinTool)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
