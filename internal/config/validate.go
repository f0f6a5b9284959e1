package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/crimpfit/internal/catalog"
	"github.com/roach88/crimpfit/internal/engine"
)

// Validation codes (E201-E209 errors, W210-W219 warnings)
const (
	ErrDuplicateSeries      = "E201" // series code listed twice
	ErrEmptySeries          = "E202" // blank series code
	ErrDuplicateClass       = "E203" // class listed twice
	ErrDefaultClassMissing  = "E204" // default class not in classes
	ErrMarkerWhitespace     = "E205" // marker has surrounding whitespace
	WarnOverlappingSeries   = "W210" // one normalised code contains another
	WarnDefaultTypeStudHole = "W211" // stud hole default on a type without stud holes
)

// Severity levels for validation findings.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ValidationError represents a catalog configuration finding.
type ValidationError struct {
	Field    string `json:"field"`
	Message  string `json:"message"`
	Code     string `json:"code"`
	Severity string `json:"severity"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// IsWarning reports whether the finding does not fail validation.
func (e ValidationError) IsWarning() bool {
	return e.Severity == SeverityWarning
}

// HasErrors reports whether any finding is an error.
func HasErrors(errs []ValidationError) bool {
	return slices.ContainsFunc(errs, func(e ValidationError) bool { return !e.IsWarning() })
}

// Validate checks rules the CUE schema cannot express.
// Returns all findings (does not fail-fast).
func Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	seen := make(map[catalog.SeriesCode]bool, len(cfg.Series))
	for i, code := range cfg.Series {
		field := fmt.Sprintf("series[%d]", i)
		if strings.TrimSpace(string(code)) == "" {
			errs = append(errs, ValidationError{
				Field:    field,
				Message:  "series code must be non-empty",
				Code:     ErrEmptySeries,
				Severity: SeverityError,
			})
			continue
		}
		if seen[code] {
			errs = append(errs, ValidationError{
				Field:    field,
				Message:  fmt.Sprintf("duplicate series code %q", code),
				Code:     ErrDuplicateSeries,
				Severity: SeverityError,
			})
		}
		seen[code] = true
	}

	classes := make(map[catalog.ConductorClass]bool, len(cfg.Classes))
	for i, class := range cfg.Classes {
		if classes[class] {
			errs = append(errs, ValidationError{
				Field:    fmt.Sprintf("classes[%d]", i),
				Message:  fmt.Sprintf("duplicate class %q", class),
				Code:     ErrDuplicateClass,
				Severity: SeverityError,
			})
		}
		classes[class] = true
	}

	if !classes[catalog.ConductorClass(cfg.Defaults.Class)] {
		errs = append(errs, ValidationError{
			Field:    "defaults.class",
			Message:  fmt.Sprintf("default class %q is not in classes", cfg.Defaults.Class),
			Code:     ErrDefaultClassMissing,
			Severity: SeverityError,
		})
	}

	if cfg.Marker != strings.TrimSpace(cfg.Marker) {
		errs = append(errs, ValidationError{
			Field:    "marker",
			Message:  "marker must not have surrounding whitespace; cells are trimmed before comparison",
			Code:     ErrMarkerWhitespace,
			Severity: SeverityError,
		})
	}

	if cfg.Defaults.StudHole != nil {
		if t, err := catalog.ParseConnectorType(cfg.Defaults.ConnectorType); err == nil && !t.UsesStudHole() {
			errs = append(errs, ValidationError{
				Field:    "defaults.stud_hole",
				Message:  fmt.Sprintf("stud hole is ignored for connector type %q", t),
				Code:     WarnDefaultTypeStudHole,
				Severity: SeverityWarning,
			})
		}
	}

	for _, o := range engine.OverlappingSeries(cfg.Series) {
		errs = append(errs, ValidationError{
			Field: "series",
			Message: fmt.Sprintf("%q is contained in %q; tools of %s also match %s connectors",
				o.Inner, o.Outer, o.Outer, o.Inner),
			Code:     WarnOverlappingSeries,
			Severity: SeverityWarning,
		})
	}

	return errs
}

// InvalidError reports a configuration whose validation found errors.
type InvalidError struct {
	Source   string
	Findings []ValidationError
}

func (e *InvalidError) Error() string {
	var errs []string
	for _, f := range e.Findings {
		if !f.IsWarning() {
			errs = append(errs, f.Error())
		}
	}
	return fmt.Sprintf("%s: invalid catalog config: %s", e.Source, strings.Join(errs, "; "))
}

// Check validates cfg and returns an *InvalidError when any finding is an
// error. Warnings alone pass.
func Check(cfg *Config) error {
	findings := Validate(cfg)
	if !HasErrors(findings) {
		return nil
	}
	return &InvalidError{Source: cfg.Source, Findings: findings}
}
