package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sakal05/souk/internal/ledger"
)

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <listing-id>",
		Short: "Show a single listing",
		Long: `Show the current state of one listing by id.

Example:
  souk get p1 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runGet(opts *RootOptions, id string, cmd *cobra.Command) error {
	eng, cleanup, err := openEngine(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	out := formatter(opts, cmd)
	l, err := eng.GetListing(cmd.Context(), id)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read listing", err)
	}
	if l == nil {
		le := ledger.NewListingNotFoundError(id)
		out.Error(string(le.Code), le.Message, nil) //nolint:errcheck
		return NewExitError(ExitFailure, le.Message)
	}

	if opts.Format == "json" {
		return out.Success(l)
	}
	return out.Success(formatListing(l))
}

// formatListing renders a listing for text output.
func formatListing(l *ledger.Listing) string {
	switch l.Kind {
	case ledger.KindProject:
		return fmt.Sprintf("%s  [%s]  %q owner=%s unit=%s target=%s donors=%d donated=%s",
			l.ID, l.Kind, l.Name, l.Owner, l.DonationUnit, l.TargetInvestment, l.TotalDonor, l.TotalDonation)
	default:
		return fmt.Sprintf("%s  [%s]  %q owner=%s price=%s sold=%d",
			l.ID, l.Kind, l.Name, l.Owner, l.Price, l.Sold)
	}
}
