package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Sakal05/souk/internal/ledger"
)

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize an empty listing registry",
		Long: `Initialize an empty listing registry at the configured database path.

Creates the database file if it does not exist. A registry can be
initialized exactly once; running init again fails.

Example:
  souk init --db ./souk.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(rootOpts, cmd)
		},
	}

	return cmd
}

func runInit(opts *RootOptions, cmd *cobra.Command) error {
	eng, cleanup, err := openEngine(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	out := formatter(opts, cmd)
	if err := eng.Initialize(cmd.Context()); err != nil {
		if le := asLedgerError(err); le != nil {
			out.Error(string(le.Code), le.Message, le.Details) //nolint:errcheck
			return NewExitError(ExitFailure, le.Message)
		}
		return WrapExitError(ExitCommandError, "failed to initialize registry", err)
	}

	return out.Success("registry initialized")
}

// asLedgerError unwraps err to the coded entry-point error, if any.
func asLedgerError(err error) *ledger.Error {
	var le *ledger.Error
	if errors.As(err, &le) {
		return le
	}
	return nil
}
