package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/crimpfit/internal/engine"
	"github.com/roach88/crimpfit/internal/tui"
)

// NewPickCommand creates the interactive picker command.
func NewPickCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick a connector and tool interactively",
		Long: `Open the interactive picker. Change criteria with h/l, move between
fields and lists with tab, pin with enter and reopen a pinned list with esc.

A catalog that cannot be loaded is shown as an error over an empty catalog.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := newPickModel(cmd, rootOpts)
			if err != nil {
				return err
			}
			if err := tui.Run(cmd.Context(), model); err != nil {
				return WrapExitError(ExitFailure, "picker failed", err)
			}
			return nil
		},
	}

	return cmd
}

// newPickModel loads the catalog and builds the picker model. Load
// failures become an error view rather than a command error.
func newPickModel(cmd *cobra.Command, opts *RootOptions) (tui.Model, error) {
	loaded, err := LoadCatalog(cmd.Context(), opts)
	if err != nil {
		opts.log().Error("catalog load failed", "error", err)
		return tui.NewWithError(err), nil
	}

	state, err := loaded.NewState()
	if err != nil {
		return tui.Model{}, WrapExitError(ExitCommandError, "invalid default selection", err)
	}
	session, err := engine.NewSession(loaded.Store, state, engine.WithLogger(opts.log()))
	if err != nil {
		return tui.Model{}, WrapExitError(ExitCommandError, "failed to create session", err)
	}
	opts.log().Debug("picker session started", "session", session.ID())
	return tui.New(session), nil
}
