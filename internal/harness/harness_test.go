package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sakal05/souk/internal/ledger"
)

func strptr(s string) *string { return &s }
func u32ptr(v uint32) *uint32 { return &v }
func i64ptr(v int64) *int64   { return &v }

func TestRun_MarketplaceExactAmount(t *testing.T) {
	sc := &Scenario{
		Name:        "marketplace_exact_amount",
		Description: "exact price settles, wrong amount and unknown id do not",
		Receipts:    []string{"r-1"},
		Steps: []Step{
			{
				Op:     "create",
				Caller: "alice.near",
				Listing: &ledger.Payload{
					ID:    "p1",
					Name:  "Goat",
					Kind:  ledger.KindProduct,
					Price: 100,
				},
			},
			{Op: "settle", Caller: "bob.near", ID: "p1", Attached: 100},
			{Op: "settle", Caller: "carol.near", ID: "p1", Attached: 50, ExpectError: "AMOUNT_MISMATCH"},
			{Op: "settle", Caller: "carol.near", ID: "missing", Attached: 100, ExpectError: "LISTING_NOT_FOUND"},
		},
		Final: []FinalState{
			{ID: "p1", Owner: strptr("alice.near"), Sold: u32ptr(1)},
		},
	}

	RunWithGolden(t, sc)
}

func TestRun_CrowdfundTwoDonations(t *testing.T) {
	sc := &Scenario{
		Name:        "crowdfund_two_donations",
		Description: "two exact donations accumulate donors and totals",
		Receipts:    []string{"r-1", "r-2"},
		Steps: []Step{
			{
				Op:       "create",
				Caller:   "ngo.near",
				Attached: 10,
				Listing: &ledger.Payload{
					ID:               "well",
					Name:             "Village well",
					Kind:             ledger.KindProject,
					TargetInvestment: 5000,
				},
			},
			{Op: "settle", Caller: "bob.near", ID: "well", Attached: 10},
			{Op: "settle", Caller: "carol.near", ID: "well", Attached: 10},
		},
		Final: []FinalState{
			{ID: "well", Owner: strptr("ngo.near"), TotalDonor: u32ptr(2), TotalDonation: i64ptr(20)},
		},
	}

	RunWithGolden(t, sc)
}

func TestRun_TransferFailureRollsBack(t *testing.T) {
	sc := &Scenario{
		Name:         "transfer_failure_rollback",
		Description:  "a host-rejected transfer undoes the counter increment",
		Receipts:     []string{"r-1"},
		FailReceipts: []string{"r-1"},
		Steps: []Step{
			{
				Op:     "create",
				Caller: "alice.near",
				Listing: &ledger.Payload{
					ID:    "p1",
					Name:  "Goat",
					Kind:  ledger.KindProduct,
					Price: 100,
				},
			},
			{Op: "settle", Caller: "bob.near", ID: "p1", Attached: 100},
		},
		Final: []FinalState{
			{ID: "p1", Sold: u32ptr(0)},
		},
	}

	RunWithGolden(t, sc)
}

func TestRun_DuplicateCreate(t *testing.T) {
	sc := &Scenario{
		Name:        "duplicate_create",
		Description: "second create with the same id fails, first listing keeps its owner",
		Steps: []Step{
			{
				Op:     "create",
				Caller: "alice.near",
				Listing: &ledger.Payload{
					ID:    "p1",
					Name:  "Goat",
					Kind:  ledger.KindProduct,
					Price: 100,
				},
			},
			{
				Op:          "create",
				Caller:      "mallory.near",
				ExpectError: "DUPLICATE_LISTING",
				Listing: &ledger.Payload{
					ID:    "p1",
					Name:  "Fake goat",
					Kind:  ledger.KindProduct,
					Price: 1,
				},
			},
		},
		Final: []FinalState{
			{ID: "p1", Owner: strptr("alice.near"), Sold: u32ptr(0)},
		},
	}

	Run(t, sc)
}

func TestLoadScenario_FromYAML(t *testing.T) {
	sc, err := LoadScenario("testdata/scenarios/marketplace.yaml")
	require.NoError(t, err)

	assert.Equal(t, "marketplace_yaml", sc.Name)
	require.Len(t, sc.Steps, 2)
	assert.Equal(t, "create", sc.Steps[0].Op)
	require.NotNil(t, sc.Steps[0].Listing)
	assert.Equal(t, ledger.Amount(100), sc.Steps[0].Listing.Price)

	Run(t, sc)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/nope.yaml")
	assert.Error(t, err)
}
