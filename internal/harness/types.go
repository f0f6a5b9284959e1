package harness

// TraceEvent records one step and the evaluation that followed it.
type TraceEvent struct {
	Seq        int      `json:"seq"`
	Action     string   `json:"action"`
	Arg        string   `json:"arg,omitempty"`
	Error      string   `json:"error,omitempty"`
	Pin        string   `json:"pin"`
	Connectors []string `json:"connectors"`
	Tools      []string `json:"tools"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	Pass bool `json:"pass"`

	// Trace holds the initial evaluation followed by one event per step.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation and assertion failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Warnings are catalog load warnings. They do not fail a scenario.
	Warnings []string `json:"warnings,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an event, numbering it by position.
func (r *Result) AddTrace(ev TraceEvent) {
	ev.Seq = len(r.Trace)
	if ev.Connectors == nil {
		ev.Connectors = []string{}
	}
	if ev.Tools == nil {
		ev.Tools = []string{}
	}
	r.Trace = append(r.Trace, ev)
}

// Last returns the final trace event.
func (r *Result) Last() (TraceEvent, bool) {
	if len(r.Trace) == 0 {
		return TraceEvent{}, false
	}
	return r.Trace[len(r.Trace)-1], true
}
