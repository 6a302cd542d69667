package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sakal05/souk/internal/ledger"
)

// SettleOptions holds flags for the settle command.
type SettleOptions struct {
	*RootOptions
	Caller string
	Amount string
}

// NewSettleCommand creates the settle command.
func NewSettleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SettleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "settle <listing-id>",
		Short: "Buy a product or donate to a project",
		Long: `Settle against a listing: buy a product or donate to a project.

The attached amount must equal the listing's required amount exactly -
the price for a product, the per-donation unit for a project. A
successful settlement schedules a transfer of the amount to the listing
owner and bumps the listing's counters.

Examples:
  souk settle p1 --as bob.near --amount 100
  souk settle well --as carol.near --amount 10`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettle(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Caller, "as", "", "caller account identity (required)")
	cmd.Flags().StringVar(&opts.Amount, "amount", "", "attached deposit in base units (required)")
	_ = cmd.MarkFlagRequired("as")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runSettle(opts *SettleOptions, id string, cmd *cobra.Command) error {
	amount, err := ledger.ParseAmount(opts.Amount)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --amount", err)
	}

	eng, cleanup, err := openEngine(opts.RootOptions)
	if err != nil {
		return err
	}
	defer cleanup()

	out := formatter(opts.RootOptions, cmd)
	receipt, err := eng.Settle(cmd.Context(), id, opts.Caller, amount)
	if err != nil {
		if le := asLedgerError(err); le != nil {
			out.Error(string(le.Code), le.Message, le.Details) //nolint:errcheck
			return NewExitError(ExitFailure, le.Message)
		}
		return WrapExitError(ExitCommandError, "failed to settle", err)
	}

	if opts.Format == "json" {
		return out.Success(receipt)
	}
	return out.Success(fmt.Sprintf("settled %s: %s to %s (receipt %s)",
		receipt.ListingID, receipt.Amount, receipt.Payee, receipt.ReceiptID))
}
