package harness

import (
	"fmt"
	"slices"
	"strings"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, ev := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] %s %s -> pin=%s connectors=%v tools=%v\n",
			ev.Seq, ev.Action, ev.Arg, ev.Pin, ev.Connectors, ev.Tools)
	}

	return buf.String()
}

// checkExpect compares an evaluation against a partial expectation.
func checkExpect(e *Expect, ev TraceEvent) []string {
	if e == nil {
		return nil
	}
	var msgs []string
	if e.Connectors != nil && !slices.Equal(*e.Connectors, ev.Connectors) {
		msgs = append(msgs, fmt.Sprintf("expected connectors %v, got %v", *e.Connectors, ev.Connectors))
	}
	if e.Tools != nil && !slices.Equal(*e.Tools, ev.Tools) {
		msgs = append(msgs, fmt.Sprintf("expected tools %v, got %v", *e.Tools, ev.Tools))
	}
	if e.Pin != "" && e.Pin != ev.Pin {
		msgs = append(msgs, fmt.Sprintf("expected pin %s, got %s", e.Pin, ev.Pin))
	}
	return msgs
}

// assertFinal checks the last evaluation.
func assertFinal(trace []TraceEvent, assertion Assertion) error {
	if len(trace) == 0 {
		return &AssertionError{Type: AssertFinal, Expected: "a final evaluation", Actual: "empty trace"}
	}
	last := trace[len(trace)-1]
	if msgs := checkExpect(assertion.Expect, last); len(msgs) > 0 {
		return &AssertionError{
			Type:     AssertFinal,
			Expected: "final evaluation to match",
			Actual:   strings.Join(msgs, "; "),
			Trace:    trace,
		}
	}
	return nil
}

// assertTraceContains checks that a connector or tool appears in the
// results of at least one event.
func assertTraceContains(trace []TraceEvent, assertion Assertion) error {
	for _, ev := range trace {
		if assertion.Connector != "" && slices.Contains(ev.Connectors, assertion.Connector) {
			return nil
		}
		if assertion.Tool != "" && slices.Contains(ev.Tools, assertion.Tool) {
			return nil
		}
	}

	what := "connector " + assertion.Connector
	if assertion.Tool != "" {
		what = "tool " + assertion.Tool
	}
	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: what + " in some step's results",
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks if actions appear in the specified order.
// Actions don't need to be consecutive (intervening actions are allowed).
func assertTraceOrder(trace []TraceEvent, assertion Assertion) error {
	// Step 1: Find first position of each expected action
	positions := make(map[string]int)
	for i, ev := range trace {
		if _, seen := positions[ev.Action]; !seen {
			positions[ev.Action] = i + 1 // 1-indexed for readability
		}
	}

	// Step 2: Verify all actions found
	for _, action := range assertion.Actions {
		if positions[action] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all actions present: %v", assertion.Actions),
				Actual:   fmt.Sprintf("missing action: %s", action),
				Trace:    trace,
			}
		}
	}

	// Step 3: Verify order
	for i := 1; i < len(assertion.Actions); i++ {
		prev := assertion.Actions[i-1]
		curr := assertion.Actions[i]

		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("actions in order: %v", assertion.Actions),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Trace: trace,
			}
		}
	}

	return nil
}

// assertTraceCount checks if the action appears exactly the specified number of times.
func assertTraceCount(trace []TraceEvent, assertion Assertion) error {
	count := 0
	for _, ev := range trace {
		if ev.Action == assertion.Action {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", assertion.Count, assertion.Action),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}

	return nil
}

// EvaluateAssertions runs all assertions and returns error messages.
// Does not stop at the first failure.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertFinal:
			err = assertFinal(result.Trace, a)
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, a)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, a)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}
