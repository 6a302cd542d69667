package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Enumerate all listings",
		Long: `Enumerate every listing in the registry.

Order is stable insertion order: two runs with no intervening writes
print the same sequence.

Example:
  souk list --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}

	return cmd
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	eng, cleanup, err := openEngine(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	out := formatter(opts, cmd)
	listings, err := eng.ListListings(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list listings", err)
	}

	if opts.Format == "json" {
		return out.Success(listings)
	}

	if len(listings) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no listings")
		return nil
	}
	for _, l := range listings {
		fmt.Fprintln(cmd.OutOrStdout(), formatListing(l))
	}
	return nil
}
