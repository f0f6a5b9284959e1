package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/crimpfit/internal/config"
	"github.com/roach88/crimpfit/internal/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose       bool
	Format        string // "json" | "text"
	Connectors    string // connector catalog CSV
	Tools         string // tool catalog CSV
	CatalogConfig string // CUE catalog configuration; empty uses the embedded default
	LogLevel      string
	LogJSON       bool

	// Logger is set by the root command before any subcommand runs.
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the crimpfit CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "crimpfit",
		Short: "crimpfit - connector and crimp tool matcher",
		Long: `Narrow a connector catalog by material, conductor class, connector type,
cross section and stud hole, and find the crimping tools that fit.

Settings come from flags, CRIMPFIT_* environment variables and an optional
crimpfit.yaml, in that order of precedence.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	// Global flags
	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output (debug logging)")
	flags.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	flags.StringVar(&opts.Connectors, "connectors", "data/connectors.csv", "connector catalog CSV")
	flags.StringVar(&opts.Tools, "tools", "data/tools.csv", "tool catalog CSV")
	flags.StringVar(&opts.CatalogConfig, "catalog-config", "", "CUE catalog configuration (default: embedded)")
	flags.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	flags.BoolVar(&opts.LogJSON, "log-json", false, "log as JSON")

	// Add subcommands
	cmd.AddCommand(NewValuesCommand(opts))
	cmd.AddCommand(NewMatchCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewPickCommand(opts))

	return cmd
}

// resolve merges viper settings into the options and installs the logger.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	settings, err := config.LoadSettings(cmd.Flags())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load settings", err)
	}
	o.Connectors = settings.Connectors
	o.Tools = settings.Tools
	o.CatalogConfig = settings.CatalogConfig
	o.Format = settings.Format
	o.LogLevel = settings.LogLevel
	o.LogJSON = settings.LogJSON

	if !isValidFormat(o.Format) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}

	level := o.LogLevel
	if o.Verbose {
		level = string(logger.DebugLevel)
	}
	l, err := logger.Setup(level, o.LogJSON, cmd.ErrOrStderr())
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid log level", err)
	}
	o.Logger = l
	o.Logger.Debug("settings resolved",
		"connectors", o.Connectors,
		"tools", o.Tools,
		"catalog_config", o.CatalogConfig,
		"format", o.Format)
	return nil
}

// log returns the configured logger, or a discarding one when the command
// runs without the root.
func (o *RootOptions) log() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// formatter builds the output formatter for a command.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}
