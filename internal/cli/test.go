package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/crimpfit/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update    bool   // regenerate golden files
	Filter    string // scenario filter (glob pattern)
	GoldenDir string // golden trace directory (default: <scenarios-dir>/golden)
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name     string   `json:"name"`
	Pass     bool     `json:"pass"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run conformance scenarios",
		Long: `Run YAML conformance scenarios against the matching engine.

Each scenario drives a selection through a list of steps, checks the
expected connectors, tools and pin state after each step, and compares the
full trace against a golden file when one exists.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  crimpfit test ./scenarios
  crimpfit test ./scenarios --filter "pin-*"
  crimpfit test ./scenarios --update
  crimpfit test ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")
	cmd.Flags().StringVar(&opts.GoldenDir, "golden-dir", "", "golden trace directory (default <scenarios-dir>/golden)")

	return cmd
}

func runTests(opts *TestOptions, scenariosDir string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if _, err := os.Stat(scenariosDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", scenariosDir))
	}
	goldenDir := opts.GoldenDir
	if goldenDir == "" {
		goldenDir = filepath.Join(scenariosDir, "golden")
	}

	// Find scenario files
	scenarioFiles, err := findScenarioFiles(scenariosDir, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find scenarios", err)
	}

	if len(scenarioFiles) == 0 {
		if formatter.IsJSON() {
			return outputTestJSON(formatter, TestResult{Scenarios: []ScenarioResult{}})
		}
		fmt.Fprintln(formatter.Writer, "No scenarios found.")
		return nil
	}

	// Run scenarios
	result := TestResult{
		Scenarios: make([]ScenarioResult, 0, len(scenarioFiles)),
		Total:     len(scenarioFiles),
	}

	for _, scenarioFile := range scenarioFiles {
		formatter.VerboseLog("Running %s", scenarioFile)
		scenResult := runScenario(cmd, scenarioFile, goldenDir, opts)
		result.Scenarios = append(result.Scenarios, scenResult)

		if !formatter.IsJSON() {
			writeScenarioLine(formatter.Writer, scenResult)
		}
		if scenResult.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	// Output results
	if formatter.IsJSON() {
		return outputTestJSON(formatter, result)
	}
	return outputTestText(formatter.Writer, result)
}

// findScenarioFiles finds all YAML scenario files in a directory.
func findScenarioFiles(dir string, filter string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		// Only process .yaml and .yml files
		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		// Apply filter if specified
		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

// runScenario executes a single scenario and returns the result.
func runScenario(cmd *cobra.Command, scenarioFile, goldenDir string, opts *TestOptions) ScenarioResult {
	scenario, result, err := harness.RunFile(cmd.Context(), scenarioFile)
	if err != nil {
		name := filepath.Base(scenarioFile)
		if scenario != nil {
			name = scenario.Name
		}
		return ScenarioResult{Name: name, Errors: []string{err.Error()}}
	}

	out := ScenarioResult{
		Name:     scenario.Name,
		Pass:     result.Pass,
		Errors:   result.Errors,
		Warnings: result.Warnings,
	}

	trace, err := harness.MarshalTrace(scenario.Name, result)
	if err != nil {
		out.Pass = false
		out.Errors = append(out.Errors, fmt.Sprintf("failed to marshal trace: %v", err))
		return out
	}
	goldenPath := filepath.Join(goldenDir, scenario.Name+".golden")

	if opts.Update {
		if err := writeGolden(goldenPath, trace); err != nil {
			out.Pass = false
			out.Errors = append(out.Errors, err.Error())
		}
		return out
	}

	golden, err := os.ReadFile(goldenPath)
	if os.IsNotExist(err) {
		// No golden file - use expectations and assertions only
		return out
	}
	if err != nil {
		out.Pass = false
		out.Errors = append(out.Errors, fmt.Sprintf("failed to read golden file: %v", err))
		return out
	}
	if !bytes.Equal(golden, trace) {
		out.Pass = false
		out.Errors = append(out.Errors, "trace does not match golden file (run with --update to regenerate)")
	}
	return out
}

// writeGolden writes the current trace as the golden file.
func writeGolden(path string, trace []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(path, trace, 0o644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

func writeScenarioLine(w io.Writer, r ScenarioResult) {
	if r.Pass {
		fmt.Fprintf(w, "✓ %s\n", r.Name)
	} else {
		fmt.Fprintf(w, "✗ %s\n", r.Name)
	}
	for _, e := range r.Errors {
		fmt.Fprintf(w, "  %s\n", e)
	}
	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "  warning %s\n", warn)
	}
}

// outputTestJSON outputs the test result as JSON.
func outputTestJSON(formatter *OutputFormatter, result TestResult) error {
	if result.Failed == 0 {
		return formatter.Success(result)
	}

	message := fmt.Sprintf("%d scenario(s) failed", result.Failed)
	if err := formatter.Failure(result, ErrCodeTestFailed, message); err != nil {
		return err
	}
	// Test failures = exit code 1
	return NewExitError(ExitFailure, message)
}

// outputTestText outputs the test summary as text.
func outputTestText(w io.Writer, result TestResult) error {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)

	if result.Failed > 0 {
		// Test failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}

	fmt.Fprintln(w, "✓ All scenarios passed")
	return nil
}
