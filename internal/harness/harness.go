package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/roach88/crimpfit/internal/catalog"
	"github.com/roach88/crimpfit/internal/config"
	"github.com/roach88/crimpfit/internal/engine"
	"github.com/roach88/crimpfit/internal/selection"
	"github.com/roach88/crimpfit/internal/store"
	"github.com/roach88/crimpfit/internal/testutil"
)

// Harness drives one scenario through an engine session.
type Harness struct {
	store   *store.Store
	session *engine.Session
	logger  *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs against a fresh store and selection. Execution flow:
// 1. Load and check the catalog configuration (or the embedded default)
// 2. Build the store from inline records or CSV files
// 3. Create the selection from the configured and scenario defaults
// 4. Record the initial evaluation, then run each step and its expect
// 5. Evaluate assertions against the trace
func Run(scenario *Scenario) (*Result, error) {
	cfg, err := config.Load(scenario.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog config: %w", err)
	}
	if err := config.Check(cfg); err != nil {
		return nil, err
	}
	schema := cfg.Schema()

	st, report, err := buildStore(scenario.Catalog, schema)
	if err != nil {
		return nil, err
	}

	state, err := selection.New(overlay(cfg.SelectionDefaults(), scenario.Defaults), selection.DomainOf(st))
	if err != nil {
		return nil, fmt.Errorf("failed to create selection: %w", err)
	}

	logger := testutil.DiscardLogger()
	session, err := engine.NewSession(st, state,
		engine.WithLogger(logger),
		engine.WithIDGenerator(engine.NewFixedGenerator(scenario.Name)))
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	h := &Harness{store: st, session: session, logger: logger}

	result := NewResult()
	for _, w := range report.Warnings {
		result.Warnings = append(result.Warnings, w.String())
	}

	result.AddTrace(h.event(ActionStart, ""))
	for i, step := range scenario.Steps {
		h.executeStep(i, step, result)
	}

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

// buildStore loads inline records or CSV files.
func buildStore(c Catalog, schema catalog.Schema) (*store.Store, *store.LoadReport, error) {
	connRows := make([]store.Row, 0, len(c.Connectors))
	for _, r := range c.Connectors {
		connRows = append(connRows, testutil.Connector{
			PartNumber:   r.Part,
			Material:     r.Material,
			Kind:         r.Kind,
			CrossSection: r.CrossSection,
			StudHole:     r.StudHole,
			Classes:      r.Classes,
			Series:       r.Series,
		}.RowFor(schema))
	}
	toolRows := make([]store.Row, 0, len(c.Tools))
	for _, r := range c.Tools {
		toolRows = append(toolRows, testutil.Tool{SKU: r.SKU, ProductName: r.Name, Series: r.Series}.Row())
	}

	if c.ConnectorsCSV != "" {
		rows, err := readCSV(c.ConnectorsCSV)
		if err != nil {
			return nil, nil, fmt.Errorf("load connectors: %w", err)
		}
		connRows = rows
	}
	if c.ToolsCSV != "" {
		rows, err := readCSV(c.ToolsCSV)
		if err != nil {
			return nil, nil, fmt.Errorf("load tools: %w", err)
		}
		toolRows = rows
	}

	st, report := store.Load(connRows, toolRows, schema)
	return st, report, nil
}

func readCSV(path string) ([]store.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, _, err := store.ReadRows(f)
	return rows, err
}

// overlay applies scenario overrides to the configured defaults.
func overlay(base selection.Defaults, o *Defaults) selection.Defaults {
	if o == nil {
		return base
	}
	if o.Material != "" {
		base.Material = o.Material
	}
	if o.Class != "" {
		base.Class = o.Class
	}
	if o.ConnectorType != "" {
		base.ConnectorType = o.ConnectorType
	}
	if o.CrossSection != nil {
		base.CrossSection = o.CrossSection
	}
	if o.StudHole != nil {
		base.StudHole = o.StudHole
	}
	return base
}

// executeStep runs one action, records the evaluation and checks the
// step's expectations.
func (h *Harness) executeStep(i int, step Step, result *Result) {
	action := step.Action()
	arg, err := h.apply(step)

	var ev TraceEvent
	switch action {
	case ActionSearchConnectors, ActionSearchTools:
		ev = h.searchEvent(action, arg)
	default:
		ev = h.event(action, arg)
	}
	if err != nil {
		ev.Error = errorCode(err)
	}
	result.AddTrace(ev)

	label := fmt.Sprintf("steps[%d] (%s)", i, action)
	switch {
	case step.ExpectError != "" && ev.Error != step.ExpectError:
		result.AddError(fmt.Sprintf("%s: expected error %s, got %q", label, step.ExpectError, ev.Error))
	case step.ExpectError == "" && err != nil:
		result.AddError(fmt.Sprintf("%s: unexpected error: %v", label, err))
	}
	for _, msg := range checkExpect(step.Expect, ev) {
		result.AddError(fmt.Sprintf("%s: %s", label, msg))
	}

	h.logger.Debug("step completed", "step", i, "action", action, "error", ev.Error)
}

// apply performs the step's action and returns its argument text.
func (h *Harness) apply(step Step) (string, error) {
	state := h.session.State()
	switch step.Action() {
	case ActionSetMaterial:
		m, err := catalog.ParseMaterial(step.SetMaterial)
		if err != nil {
			return step.SetMaterial, state.SetMaterial(catalog.Material(step.SetMaterial))
		}
		return step.SetMaterial, state.SetMaterial(m)
	case ActionSetClass:
		return step.SetClass, state.SetConductorClass(selection.ParseConductorClass(step.SetClass))
	case ActionSetType:
		t, err := catalog.ParseConnectorType(step.SetType)
		if err != nil {
			return step.SetType, state.SetConnectorType(catalog.ConnectorType(step.SetType))
		}
		return step.SetType, state.SetConnectorType(t)
	case ActionSetCrossSection:
		return formatFloat(*step.SetCrossSection), state.SetCrossSection(*step.SetCrossSection)
	case ActionSetStudHole:
		return formatFloat(*step.SetStudHole), state.SetStudHole(*step.SetStudHole)
	case ActionPinConnector:
		return step.PinConnector, h.session.PinConnector(step.PinConnector)
	case ActionPinTool:
		return step.PinTool, h.session.PinTool(step.PinTool)
	case ActionUnpin:
		h.session.Unpin()
		return "", nil
	case ActionReopen:
		return step.Reopen, h.session.Reopen(selection.PinKind(step.Reopen))
	case ActionSearchConnectors:
		return *step.SearchConnectors, nil
	case ActionSearchTools:
		return *step.SearchTools, nil
	default:
		return "", nil
	}
}

// event evaluates the session and records it.
func (h *Harness) event(action, arg string) TraceEvent {
	r := h.session.Evaluate()
	return TraceEvent{
		Action:     action,
		Arg:        arg,
		Pin:        string(r.Pin),
		Connectors: partNumbers(r.Connectors),
		Tools:      skus(r.Tools),
	}
}

// searchEvent records the evaluation filtered by a search query.
func (h *Harness) searchEvent(action, query string) TraceEvent {
	r := h.session.Evaluate()
	ev := TraceEvent{Action: action, Arg: query, Pin: string(r.Pin)}
	if action == ActionSearchConnectors {
		ev.Connectors = partNumbers(engine.SearchConnectors(r.Connectors, query))
		ev.Tools = skus(r.Tools)
	} else {
		ev.Connectors = partNumbers(r.Connectors)
		ev.Tools = skus(engine.SearchTools(r.Tools, query))
	}
	return ev
}

// errorCode extracts the code of a typed error.
func errorCode(err error) string {
	var se *selection.InvalidSelectionError
	if errors.As(err, &se) {
		return se.Code
	}
	var ee *engine.Error
	if errors.As(err, &ee) {
		return string(ee.Code)
	}
	return err.Error()
}

func partNumbers(cs []catalog.Connector) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.PartNumber)
	}
	return out
}

func skus(ts []catalog.Tool) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.SKU)
	}
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RunFile loads and runs a scenario file.
func RunFile(ctx context.Context, path string) (*Scenario, *Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	scenario, err := LoadScenario(path)
	if err != nil {
		return nil, nil, err
	}
	result, err := Run(scenario)
	if err != nil {
		return scenario, nil, err
	}
	return scenario, result, nil
}
