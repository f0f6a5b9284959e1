package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/crimpfit/internal/catalog"
	"github.com/roach88/crimpfit/internal/engine"
)

// ValuesResult lists the values a selection can take for a catalog.
type ValuesResult struct {
	Materials      []catalog.Material       `json:"materials"`
	Classes        []catalog.ConductorClass `json:"classes"`
	ConnectorTypes []catalog.ConnectorType  `json:"connector_types"`
	CrossSections  []float64                `json:"cross_sections"`
	StudHoles      []float64                `json:"stud_holes"`
	Connectors     int                      `json:"connectors"`
	Tools          int                      `json:"tools"`
}

// NewValuesCommand creates the values command.
func NewValuesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "values",
		Short: "List selectable values derived from the catalog",
		Long: `List the materials, conductor classes and connector types on offer, and the
distinct cross sections and stud holes found in the connector catalog.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValues(rootOpts, cmd)
		},
	}

	return cmd
}

func runValues(opts *RootOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	loaded, err := LoadCatalog(cmd.Context(), opts)
	if err != nil {
		return outputLoadError(formatter, err)
	}
	connectors, tools := loaded.Store.Len()

	result := ValuesResult{
		Materials:      catalog.Materials,
		Classes:        loaded.Config.Classes,
		ConnectorTypes: catalog.ConnectorTypes,
		CrossSections:  nonNil(engine.CrossSections(loaded.Store)),
		StudHoles:      nonNil(engine.StudHoles(loaded.Store)),
		Connectors:     connectors,
		Tools:          tools,
	}

	if formatter.IsJSON() {
		return formatter.Success(result)
	}
	return writeValuesText(formatter.Writer, result)
}

func writeValuesText(w io.Writer, r ValuesResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Catalog:\t%d connectors, %d tools\n", r.Connectors, r.Tools)
	fmt.Fprintf(tw, "Materials:\t%s\n", joinValues(r.Materials))
	fmt.Fprintf(tw, "Classes:\t%s\n", joinValues(r.Classes))
	fmt.Fprintf(tw, "Connector types:\t%s\n", joinValues(r.ConnectorTypes))
	fmt.Fprintf(tw, "Cross sections (mm²):\t%s\n", joinFloats(r.CrossSections))
	fmt.Fprintf(tw, "Stud holes (mm):\t%s\n", joinFloats(r.StudHoles))
	return tw.Flush()
}

// outputLoadError reports a catalog load failure as a command error.
func outputLoadError(formatter *OutputFormatter, err error) error {
	code := ErrCodeGeneric
	message := err.Error()
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		code = loadErr.Code
		message = loadErr.Error()
	}
	_ = formatter.Error(code, message, nil)
	return WrapExitError(ExitCommandError, "failed to load catalog", err)
}

func joinValues[T ~string](vs []T) string {
	if len(vs) == 0 {
		return "-"
	}
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func joinFloats(vs []float64) string {
	if len(vs) == 0 {
		return "-"
	}
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = catalog.Of(v).String()
	}
	return strings.Join(parts, ", ")
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
