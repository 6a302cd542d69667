package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewTransfersCommand creates the transfers command.
func NewTransfersCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfers",
		Short: "Show the outbound transfer journal",
		Long: `Show every outbound transfer the registry has scheduled, in
scheduling order, with its current status (scheduled, settled, failed).

Example:
  souk transfers --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransfers(rootOpts, cmd)
		},
	}

	return cmd
}

func runTransfers(opts *RootOptions, cmd *cobra.Command) error {
	eng, cleanup, err := openEngine(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	out := formatter(opts, cmd)
	transfers, err := eng.ListTransfers(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list transfers", err)
	}

	if opts.Format == "json" {
		return out.Success(transfers)
	}

	if len(transfers) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no transfers")
		return nil
	}
	for _, t := range transfers {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s -> %s  %s  [%s]  listing=%s\n",
			t.ReceiptID, t.Payer, t.Payee, t.Amount, t.Status, t.ListingID)
	}
	return nil
}
