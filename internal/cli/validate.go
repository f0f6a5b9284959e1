package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/crimpfit/internal/config"
	"github.com/roach88/crimpfit/internal/store"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	ConfigOnly bool // skip loading the catalogs
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool                     `json:"valid"`
	Source   string                   `json:"source"`
	Errors   []config.ValidationError `json:"errors,omitempty"`
	Warnings []config.ValidationError `json:"warnings,omitempty"`
	Report   *store.LoadReport        `json:"report,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the catalog configuration and data files",
		Long: `Validate the CUE catalog configuration and load both catalogs.

Configuration errors (duplicate series codes, a default class that is not
offered) fail validation. Overlapping series codes and catalog load problems
such as unknown columns or duplicate part numbers are reported as warnings.

Exit codes:
  0 - Valid (warnings allowed)
  1 - Validation failed
  2 - Command error (missing files)`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.ConfigOnly, "config-only", false, "validate the catalog config without reading the catalogs")

	return cmd
}

func runValidate(opts *ValidateOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, err := LoadConfig(opts.RootOptions)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) && loadErr.Code == ErrCodeConfigInvalid {
			return outputValidationErrors(formatter, ValidationResult{
				Source: opts.CatalogConfig,
				Errors: []config.ValidationError{{
					Field:    "config",
					Message:  loadErr.Error(),
					Code:     loadErr.Code,
					Severity: config.SeverityError,
				}},
			})
		}
		return outputLoadError(formatter, err)
	}
	formatter.VerboseLog("Compiled catalog config %s: %d series, %d classes", cfg.Source, len(cfg.Series), len(cfg.Classes))

	result := ValidationResult{Source: cfg.Source}
	for _, finding := range config.Validate(cfg) {
		if finding.IsWarning() {
			result.Warnings = append(result.Warnings, finding)
		} else {
			result.Errors = append(result.Errors, finding)
		}
	}

	if !opts.ConfigOnly && len(result.Errors) == 0 {
		loaded, err := LoadCatalog(cmd.Context(), opts.RootOptions)
		if err != nil {
			return outputLoadError(formatter, err)
		}
		result.Report = loaded.Report
		formatter.VerboseLog("Loaded %d connectors and %d tools", loaded.Report.Connectors, loaded.Report.Tools)
	}

	if len(result.Errors) > 0 {
		return outputValidationErrors(formatter, result)
	}

	result.Valid = true
	return outputValidateSuccess(formatter, result)
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.IsJSON() {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "✓ Catalog config valid (%s)\n", result.Source)
	for _, warn := range result.Warnings {
		fmt.Fprintf(w, "  warning %s\n", warn.Error())
	}
	if r := result.Report; r != nil {
		fmt.Fprintf(w, "✓ Catalogs loaded: %d connectors, %d tools\n", r.Connectors, r.Tools)
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  warning %s\n", warn.String())
		}
	}
	return nil
}

// outputValidationErrors outputs the findings of a failed validation.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	exitErr := NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)))

	if formatter.IsJSON() {
		first := result.Errors[0]
		if err := formatter.Failure(result, first.Code, first.Message); err != nil {
			return err
		}
		// Validation failures = exit code 1 (test/validation failure)
		return exitErr
	}

	w := formatter.Writer
	fmt.Fprintln(w, "✗ Validation failed")
	fmt.Fprintln(w)
	for _, e := range result.Errors {
		fmt.Fprintf(w, "  %s: %s: %s\n", e.Code, e.Field, e.Message)
	}
	for _, warn := range result.Warnings {
		fmt.Fprintf(w, "  warning %s\n", warn.Error())
	}

	return exitErr
}
