package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/crimpfit/internal/catalog"
	"github.com/roach88/crimpfit/internal/engine"
	"github.com/roach88/crimpfit/internal/selection"
)

// MatchOptions holds flags for the match command.
type MatchOptions struct {
	*RootOptions
	Material         string
	Class            string
	Type             string
	CrossSection     float64
	StudHole         float64
	Connector        string
	Tool             string
	SearchConnectors string
	SearchTools      string
}

// NewMatchCommand creates the match command.
func NewMatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "match",
		Short: "List connectors and tools matching a selection",
		Long: `Evaluate a selection against the catalog and list the matching connectors
and the tools that crimp them.

Unset criteria keep the configured defaults. Pinning a connector narrows the
tools to those covering its series; pinning a tool narrows the connectors to
those in its series. Search queries filter the printed lists only.

Exit codes:
  0 - Selection evaluated
  1 - Pinned connector or tool is not in the results
  2 - Command error (missing catalog, invalid selection)

Examples:
  crimpfit match --cross-section 16 --stud-hole 8
  crimpfit match --material Aluminium --type Connector
  crimpfit match --cross-section 16 --connector 1800011
  crimpfit match --tool KT-50 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Material, "material", "", "conductor material (Copper|Aluminium)")
	cmd.Flags().StringVar(&opts.Class, "class", "", `conductor class, e.g. "Class 5"`)
	cmd.Flags().StringVar(&opts.Type, "type", "", "connector type (Cable Lug|Connector|Wire Ferrule)")
	cmd.Flags().Float64Var(&opts.CrossSection, "cross-section", 0, "nominal cross section in mm²")
	cmd.Flags().Float64Var(&opts.StudHole, "stud-hole", 0, "stud hole in mm (cable lugs only)")
	cmd.Flags().StringVar(&opts.Connector, "connector", "", "pin a connector by part number")
	cmd.Flags().StringVar(&opts.Tool, "tool", "", "pin a tool by SKU")
	cmd.Flags().StringVar(&opts.SearchConnectors, "search-connectors", "", "filter printed connectors by part number or material")
	cmd.Flags().StringVar(&opts.SearchTools, "search-tools", "", "filter printed tools by SKU or product name")
	cmd.MarkFlagsMutuallyExclusive("connector", "tool")

	return cmd
}

func runMatch(opts *MatchOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	loaded, err := LoadCatalog(cmd.Context(), opts.RootOptions)
	if err != nil {
		return outputLoadError(formatter, err)
	}

	state, err := loaded.NewState()
	if err != nil {
		return outputSelectionError(formatter, err)
	}
	if err := applyCriteria(opts, cmd, state); err != nil {
		return outputSelectionError(formatter, err)
	}

	session, err := engine.NewSession(loaded.Store, state, engine.WithLogger(opts.log()))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create session", err)
	}

	switch {
	case opts.Connector != "":
		err = session.PinConnector(opts.Connector)
	case opts.Tool != "":
		err = session.PinTool(opts.Tool)
	}
	if err != nil {
		return outputSelectionError(formatter, err)
	}

	result := session.Evaluate()
	result.Connectors = nonNil(engine.SearchConnectors(result.Connectors, opts.SearchConnectors))
	result.Tools = nonNil(engine.SearchTools(result.Tools, opts.SearchTools))

	opts.log().Debug("match evaluated",
		"session", session.ID(),
		"connectors", len(result.Connectors),
		"tools", len(result.Tools))

	if formatter.IsJSON() {
		return formatter.Success(result)
	}
	return writeMatchText(formatter.Writer, result)
}

// applyCriteria applies the criteria flags that were set on the command line.
func applyCriteria(opts *MatchOptions, cmd *cobra.Command, state *selection.State) error {
	flags := cmd.Flags()

	if flags.Changed("material") {
		m, err := catalog.ParseMaterial(opts.Material)
		if err != nil {
			m = catalog.Material(opts.Material)
		}
		if err := state.SetMaterial(m); err != nil {
			return err
		}
	}
	if flags.Changed("class") {
		class, ok := catalog.FindClass(opts.Class)
		if !ok {
			class = catalog.ConductorClass(opts.Class)
		}
		if err := state.SetConductorClass(class); err != nil {
			return err
		}
	}
	if flags.Changed("type") {
		t, err := catalog.ParseConnectorType(opts.Type)
		if err != nil {
			t = catalog.ConnectorType(opts.Type)
		}
		if err := state.SetConnectorType(t); err != nil {
			return err
		}
	}
	if flags.Changed("cross-section") {
		if err := state.SetCrossSection(opts.CrossSection); err != nil {
			return err
		}
	}
	if flags.Changed("stud-hole") {
		if err := state.SetStudHole(opts.StudHole); err != nil {
			return err
		}
	}
	return nil
}

// outputSelectionError reports an invalid selection or pin. A pin outside
// the results is a failed match (exit 1); anything else is a command error.
func outputSelectionError(formatter *OutputFormatter, err error) error {
	var selErr *selection.InvalidSelectionError
	if errors.As(err, &selErr) {
		_ = formatter.Error(selErr.Code, selErr.Message, map[string]string{"field": selErr.Field, "value": selErr.Value})
		return WrapExitError(ExitCommandError, "invalid selection", err)
	}
	var engErr *engine.Error
	if errors.As(err, &engErr) {
		_ = formatter.Error(string(engErr.Code), engErr.Message, engErr.Details)
		return WrapExitError(ExitFailure, "pin rejected", err)
	}
	_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
	return WrapExitError(ExitCommandError, "match failed", err)
}

func writeMatchText(w io.Writer, r engine.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	cr := r.Criteria
	fmt.Fprintf(tw, "Material:\t%s\n", cr.Material)
	fmt.Fprintf(tw, "Class:\t%s\n", cr.Class)
	fmt.Fprintf(tw, "Connector type:\t%s\n", cr.ConnectorType)
	fmt.Fprintf(tw, "Cross section:\t%s\n", withUnit(cr.CrossSection, "mm²"))
	studHole := withUnit(cr.StudHole, "mm")
	if !cr.ConnectorType.UsesStudHole() {
		studHole += " (not used)"
	}
	fmt.Fprintf(tw, "Stud hole:\t%s\n", studHole)
	fmt.Fprintf(tw, "Pin:\t%s\n", pinText(r))
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nConnectors (%d)\n", len(r.Connectors))
	if len(r.Connectors) == 0 {
		fmt.Fprintln(w, "  (none)")
	} else {
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  PART NO.\tMATERIAL\tKIND\tCROSS SECTION\tSTUD HOLE\tSERIES")
		for _, c := range r.Connectors {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\n",
				c.PartNumber, c.Material, c.Kind, c.CrossSection, c.StudHole, joinValues(c.Series))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "\nTools (%d)\n", len(r.Tools))
	if len(r.Tools) == 0 {
		fmt.Fprintln(w, "  (none)")
		return nil
	}
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  SKU\tPRODUCT NAME\tSERIES")
	for _, t := range r.Tools {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", t.SKU, t.ProductName, t.Series)
	}
	return tw.Flush()
}

func withUnit(m catalog.Measure, unit string) string {
	if !m.Valid {
		return m.String()
	}
	return m.String() + " " + unit
}

func pinText(r engine.Result) string {
	switch {
	case r.PinnedConnector != nil:
		return "connector " + r.PinnedConnector.PartNumber
	case r.PinnedTool != nil:
		return "tool " + r.PinnedTool.SKU
	default:
		return string(r.Pin)
	}
}
