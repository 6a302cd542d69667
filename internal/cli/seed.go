package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/spf13/cobra"

	"github.com/Sakal05/souk/internal/ledger"
)

// seedSchema constrains a seed catalog. Every entry under "listing" is
// validated against #Listing before anything reaches the engine.
const seedSchema = `
#Listing: {
	name:         string
	description?: string
	image?:       string
	location?:    string
	kind:         "product" | "project"
	price?:             int & >=0
	target_investment?: int & >=0
	deposit?:           int & >=0
}

listing: [string]: #Listing
`

// seedEntry is the decoded form of one catalog entry.
type seedEntry struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	Image            string `json:"image"`
	Location         string `json:"location"`
	Kind             string `json:"kind"`
	Price            int64  `json:"price"`
	TargetInvestment int64  `json:"target_investment"`
	Deposit          int64  `json:"deposit"`
}

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	Caller string
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed <catalog-dir>",
		Short: "Create listings from a CUE catalog",
		Long: `Create listings in bulk from CUE catalog files.

Catalog files declare entries under "listing", keyed by listing id, and
are validated against the built-in schema before anything is written:

  listing: {
      p1: { kind: "product", name: "Goat", price: 100 }
      well: { kind: "project", name: "Well", target_investment: 5000, deposit: 10 }
  }

Entries whose id is already registered are reported and skipped; the
rest are created with the --as account as owner.

Example:
  souk seed ./catalog --as market.near`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Caller, "as", "", "owner account for seeded listings (required)")
	_ = cmd.MarkFlagRequired("as")

	return cmd
}

func runSeed(opts *SeedOptions, dir string, cmd *cobra.Command) error {
	entries, err := loadCatalog(dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load catalog", err)
	}

	eng, cleanup, err := openEngine(opts.RootOptions)
	if err != nil {
		return err
	}
	defer cleanup()

	var created, skipped int
	for _, id := range sortedKeys(entries) {
		e := entries[id]
		payload := ledger.Payload{
			ID:               id,
			Name:             e.Name,
			Description:      e.Description,
			Image:            e.Image,
			Location:         e.Location,
			Kind:             ledger.Kind(e.Kind),
			Price:            ledger.Amount(e.Price),
			TargetInvestment: ledger.Amount(e.TargetInvestment),
		}
		_, err := eng.CreateListing(cmd.Context(), payload, opts.Caller, ledger.Amount(e.Deposit))
		switch {
		case err == nil:
			created++
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", id)
		case ledger.IsDuplicateListing(err):
			skipped++
			fmt.Fprintf(cmd.OutOrStdout(), "skipped %s (already registered)\n", id)
		default:
			return WrapExitError(ExitFailure, fmt.Sprintf("failed to create %s", id), err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d listing(s), skipped %d\n", created, skipped)
	return nil
}

// loadCatalog loads every .cue file in dir, validates the combined
// value against the seed schema, and returns the entries keyed by
// listing id.
func loadCatalog(dir string) (map[string]seedEntry, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("catalog directory not found: %s", dir)
	}
	if err != nil {
		return nil, fmt.Errorf("error accessing catalog directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("error scanning directory: %w", err)
	}
	if len(cueFiles) == 0 {
		return nil, fmt.Errorf("no CUE files found in %s", dir)
	}

	ctx := cuecontext.New()

	schema := ctx.CompileString(seedSchema)
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling seed schema: %w", err)
	}

	cfg := &load.Config{Dir: dir}
	instances := load.Instances([]string{"."}, cfg)
	if len(instances) == 0 {
		return nil, fmt.Errorf("no CUE instances loaded")
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, fmt.Errorf("loading CUE files: %w", inst.Err)
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("building CUE value: %w", err)
	}

	// Unify with the schema so malformed entries fail here, with CUE's
	// own position-carrying errors, not deep in the engine.
	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return nil, fmt.Errorf("catalog does not match schema: %w", err)
	}

	listingsVal := unified.LookupPath(cue.ParsePath("listing"))
	if !listingsVal.Exists() {
		return nil, fmt.Errorf("catalog declares no \"listing\" entries")
	}

	iter, err := listingsVal.Fields()
	if err != nil {
		return nil, fmt.Errorf("iterating listings: %w", err)
	}

	entries := make(map[string]seedEntry)
	for iter.Next() {
		var e seedEntry
		if err := iter.Value().Decode(&e); err != nil {
			return nil, fmt.Errorf("decoding listing %q: %w", iter.Label(), err)
		}
		entries[iter.Label()] = e
	}

	return entries, nil
}

// findCUEFiles returns the .cue files directly inside dir.
func findCUEFiles(dir string) ([]string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		if filepath.Ext(de.Name()) == ".cue" {
			files = append(files, filepath.Join(dir, de.Name()))
		}
	}
	return files, nil
}

// sortedKeys returns map keys in deterministic order so seeding output
// and insertion order are reproducible.
func sortedKeys(m map[string]seedEntry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
