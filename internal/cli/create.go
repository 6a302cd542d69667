package cli

import (
	"github.com/spf13/cobra"

	"github.com/Sakal05/souk/internal/ledger"
)

// CreateOptions holds flags for the create command.
type CreateOptions struct {
	*RootOptions
	Caller      string
	Name        string
	Description string
	Image       string
	Location    string
	Kind        string
	Price       string
	Target      string
	Deposit     string
}

// NewCreateCommand creates the create command.
func NewCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CreateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create <listing-id>",
		Short: "Register a new listing",
		Long: `Register a new marketplace or crowdfunding listing.

A product listing carries a fixed price; every purchase must attach
exactly that amount. A project listing records the deposit attached at
creation as its per-donation unit; every donation must attach exactly
that amount. Ids are caller-chosen and must be unique.

Examples:
  souk create p1 --as alice.near --kind product --name "Goat" --price 100
  souk create well --as ngo.near --kind project --target 5000 --deposit 10`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Caller, "as", "", "caller account identity (required)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "listing name")
	cmd.Flags().StringVar(&opts.Description, "description", "", "listing description")
	cmd.Flags().StringVar(&opts.Image, "image", "", "listing image URI")
	cmd.Flags().StringVar(&opts.Location, "location", "", "listing location")
	cmd.Flags().StringVar(&opts.Kind, "kind", "product", "listing kind (product|project)")
	cmd.Flags().StringVar(&opts.Price, "price", "0", "fixed price in base units (product)")
	cmd.Flags().StringVar(&opts.Target, "target", "0", "target investment in base units (project)")
	cmd.Flags().StringVar(&opts.Deposit, "deposit", "0", "attached deposit in base units (per-donation unit for projects)")
	_ = cmd.MarkFlagRequired("as")

	return cmd
}

func runCreate(opts *CreateOptions, id string, cmd *cobra.Command) error {
	price, err := ledger.ParseAmount(opts.Price)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --price", err)
	}
	target, err := ledger.ParseAmount(opts.Target)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --target", err)
	}
	deposit, err := ledger.ParseAmount(opts.Deposit)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --deposit", err)
	}

	eng, cleanup, err := openEngine(opts.RootOptions)
	if err != nil {
		return err
	}
	defer cleanup()

	payload := ledger.Payload{
		ID:               id,
		Name:             opts.Name,
		Description:      opts.Description,
		Image:            opts.Image,
		Location:         opts.Location,
		Kind:             ledger.Kind(opts.Kind),
		Price:            price,
		TargetInvestment: target,
	}

	out := formatter(opts.RootOptions, cmd)
	l, err := eng.CreateListing(cmd.Context(), payload, opts.Caller, deposit)
	if err != nil {
		if le := asLedgerError(err); le != nil {
			out.Error(string(le.Code), le.Message, le.Details) //nolint:errcheck
			return NewExitError(ExitFailure, le.Message)
		}
		return WrapExitError(ExitCommandError, "failed to create listing", err)
	}

	if opts.Format == "json" {
		return out.Success(l)
	}
	return out.Success("created listing " + l.ID)
}
