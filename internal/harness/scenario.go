package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Config is an optional CUE catalog configuration. Relative paths are
	// resolved against the scenario file.
	Config string `yaml:"config,omitempty"`

	// Catalog holds the records the scenario runs against.
	Catalog Catalog `yaml:"catalog"`

	// Defaults overrides fields of the configured initial selection.
	Defaults *Defaults `yaml:"defaults,omitempty"`

	// Steps drive the session in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the finished trace.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Catalog is either inline records or a pair of CSV files.
type Catalog struct {
	Connectors    []ConnectorRecord `yaml:"connectors,omitempty"`
	Tools         []ToolRecord      `yaml:"tools,omitempty"`
	ConnectorsCSV string            `yaml:"connectors_csv,omitempty"`
	ToolsCSV      string            `yaml:"tools_csv,omitempty"`
}

// ConnectorRecord is an inline connector row.
type ConnectorRecord struct {
	Part         string   `yaml:"part"`
	Material     string   `yaml:"material"`
	Kind         string   `yaml:"kind"`
	CrossSection string   `yaml:"cross_section"`
	StudHole     string   `yaml:"stud_hole,omitempty"`
	Classes      []string `yaml:"classes,omitempty"`
	Series       []string `yaml:"series,omitempty"`
}

// ToolRecord is an inline tool row.
type ToolRecord struct {
	SKU    string `yaml:"sku"`
	Name   string `yaml:"name,omitempty"`
	Series string `yaml:"series"`
}

// Defaults overrides the initial selection. Empty fields keep the
// configured value.
type Defaults struct {
	Material      string   `yaml:"material,omitempty"`
	Class         string   `yaml:"class,omitempty"`
	ConnectorType string   `yaml:"connector_type,omitempty"`
	CrossSection  *float64 `yaml:"cross_section,omitempty"`
	StudHole      *float64 `yaml:"stud_hole,omitempty"`
}

// Step is one adapter action followed by optional expectations.
type Step struct {
	SetMaterial      string   `yaml:"set_material,omitempty"`
	SetClass         string   `yaml:"set_class,omitempty"`
	SetType          string   `yaml:"set_type,omitempty"`
	SetCrossSection  *float64 `yaml:"set_cross_section,omitempty"`
	SetStudHole      *float64 `yaml:"set_stud_hole,omitempty"`
	PinConnector     string   `yaml:"pin_connector,omitempty"`
	PinTool          string   `yaml:"pin_tool,omitempty"`
	Unpin            bool     `yaml:"unpin,omitempty"`
	Reopen           string   `yaml:"reopen,omitempty"`
	SearchConnectors *string  `yaml:"search_connectors,omitempty"`
	SearchTools      *string  `yaml:"search_tools,omitempty"`

	// Expect checks the evaluation after the action.
	Expect *Expect `yaml:"expect,omitempty"`

	// ExpectError is the error code the action must fail with.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// Expect is a partial check of an evaluation. Nil fields are not checked.
type Expect struct {
	Connectors *[]string `yaml:"connectors,omitempty"`
	Tools      *[]string `yaml:"tools,omitempty"`
	Pin        string    `yaml:"pin,omitempty"`
}

// Assertion validates the trace.
type Assertion struct {
	// Type specifies the assertion type:
	// - "final": last evaluation matches Expect
	// - "trace_contains": Connector or Tool appears in some step's results
	// - "trace_order": Actions ran in order
	// - "trace_count": Action ran exactly Count times
	Type string `yaml:"type"`

	Expect    *Expect  `yaml:"expect,omitempty"`
	Connector string   `yaml:"connector,omitempty"`
	Tool      string   `yaml:"tool,omitempty"`
	Action    string   `yaml:"action,omitempty"`
	Actions   []string `yaml:"actions,omitempty"`
	Count     int      `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertFinal         = "final"
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
)

// Step action names as they appear in traces.
const (
	ActionStart            = "start"
	ActionCheck            = "check"
	ActionSetMaterial      = "set_material"
	ActionSetClass         = "set_class"
	ActionSetType          = "set_type"
	ActionSetCrossSection  = "set_cross_section"
	ActionSetStudHole      = "set_stud_hole"
	ActionPinConnector     = "pin_connector"
	ActionPinTool          = "pin_tool"
	ActionUnpin            = "unpin"
	ActionReopen           = "reopen"
	ActionSearchConnectors = "search_connectors"
	ActionSearchTools      = "search_tools"
)

var knownActions = map[string]bool{
	ActionSetMaterial: true, ActionSetClass: true, ActionSetType: true,
	ActionSetCrossSection: true, ActionSetStudHole: true,
	ActionPinConnector: true, ActionPinTool: true, ActionUnpin: true, ActionReopen: true,
	ActionSearchConnectors: true, ActionSearchTools: true, ActionCheck: true,
}

// actions lists the actions set on a step.
func (s Step) actions() []string {
	var out []string
	add := func(set bool, name string) {
		if set {
			out = append(out, name)
		}
	}
	add(s.SetMaterial != "", ActionSetMaterial)
	add(s.SetClass != "", ActionSetClass)
	add(s.SetType != "", ActionSetType)
	add(s.SetCrossSection != nil, ActionSetCrossSection)
	add(s.SetStudHole != nil, ActionSetStudHole)
	add(s.PinConnector != "", ActionPinConnector)
	add(s.PinTool != "", ActionPinTool)
	add(s.Unpin, ActionUnpin)
	add(s.Reopen != "", ActionReopen)
	add(s.SearchConnectors != nil, ActionSearchConnectors)
	add(s.SearchTools != nil, ActionSearchTools)
	return out
}

// Action returns the step's action name, or "check" for expect-only steps.
func (s Step) Action() string {
	if a := s.actions(); len(a) == 1 {
		return a[0]
	}
	return ActionCheck
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// Relative config and CSV paths are resolved against the file's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	base := filepath.Dir(path)
	scenario.Config = resolve(base, scenario.Config)
	scenario.Catalog.ConnectorsCSV = resolve(base, scenario.Catalog.ConnectorsCSV)
	scenario.Catalog.ToolsCSV = resolve(base, scenario.Catalog.ToolsCSV)

	if err := validatePaths(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return scenario, nil
}

// ParseScenario parses scenario YAML without touching the filesystem.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "step:" vs "steps:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func validatePaths(s *Scenario) error {
	for _, p := range []string{s.Config, s.Catalog.ConnectorsCSV, s.Catalog.ToolsCSV} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", p)
		}
	}
	return nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	c := s.Catalog
	if len(c.Connectors) > 0 && c.ConnectorsCSV != "" {
		return fmt.Errorf("catalog: connectors and connectors_csv are mutually exclusive")
	}
	if len(c.Tools) > 0 && c.ToolsCSV != "" {
		return fmt.Errorf("catalog: tools and tools_csv are mutually exclusive")
	}
	for i, r := range c.Connectors {
		if r.Part == "" {
			return fmt.Errorf("catalog.connectors[%d]: part is required", i)
		}
	}
	for i, r := range c.Tools {
		if r.SKU == "" {
			return fmt.Errorf("catalog.tools[%d]: sku is required", i)
		}
	}

	for i, step := range s.Steps {
		actions := step.actions()
		if len(actions) > 1 {
			return fmt.Errorf("steps[%d]: one action per step, got %v", i, actions)
		}
		if len(actions) == 0 && step.Expect == nil {
			return fmt.Errorf("steps[%d]: action or expect is required", i)
		}
		if step.ExpectError != "" && len(actions) == 0 {
			return fmt.Errorf("steps[%d]: expect_error needs an action", i)
		}
		if err := validateExpect(fmt.Sprintf("steps[%d].expect", i), step.Expect); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateExpect(field string, e *Expect) error {
	if e == nil {
		return nil
	}
	switch e.Pin {
	case "", "none", "connector", "tool":
		return nil
	default:
		return fmt.Errorf("%s: pin must be none, connector or tool, got %q", field, e.Pin)
	}
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertFinal:
		if a.Expect == nil {
			return fmt.Errorf("assertions[%d]: expect is required for final", index)
		}
		return validateExpect(fmt.Sprintf("assertions[%d].expect", index), a.Expect)
	case AssertTraceContains:
		if (a.Connector == "") == (a.Tool == "") {
			return fmt.Errorf("assertions[%d]: exactly one of connector or tool is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Actions) == 0 {
			return fmt.Errorf("assertions[%d]: actions list is required for trace_order", index)
		}
		for _, name := range a.Actions {
			if !knownActions[name] {
				return fmt.Errorf("assertions[%d]: unknown action %q", index, name)
			}
		}
	case AssertTraceCount:
		if !knownActions[a.Action] {
			return fmt.Errorf("assertions[%d]: known action is required for trace_count, got %q", index, a.Action)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
