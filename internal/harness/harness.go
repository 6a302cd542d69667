package harness

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/Sakal05/souk/internal/engine"
	"github.com/Sakal05/souk/internal/ledger"
	"github.com/Sakal05/souk/internal/store"
)

// Run executes a scenario against a fresh registry in a temp directory
// and asserts every expected outcome. Returns the trace for golden
// comparison.
func Run(t *testing.T, sc *Scenario) []byte {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "souk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	failing := make(map[string]bool, len(sc.FailReceipts))
	for _, id := range sc.FailReceipts {
		failing[id] = true
	}
	transferer := engine.NewAsyncTransferer(func(tr ledger.Transfer) error {
		if failing[tr.ReceiptID] {
			return fmt.Errorf("host rejected transfer")
		}
		return nil
	})

	opts := []engine.Option{}
	if len(sc.Receipts) > 0 {
		opts = append(opts, engine.WithReceiptGenerator(engine.NewFixedGenerator(sc.Receipts...)))
	}
	eng := engine.New(st, transferer, opts...)

	ctx := context.Background()
	require.NoError(t, eng.Initialize(ctx))

	var trace bytes.Buffer
	for i, step := range sc.Steps {
		var err error
		var receipt *engine.SettlementReceipt
		switch step.Op {
		case "create":
			require.NotNil(t, step.Listing, "scenario %s step %d: create without listing", sc.Name, i+1)
			_, err = eng.CreateListing(ctx, *step.Listing, step.Caller, ledger.Amount(step.Attached))
		case "settle":
			receipt, err = eng.Settle(ctx, step.ID, step.Caller, ledger.Amount(step.Attached))
		default:
			t.Fatalf("scenario %s step %d: unknown op %q", sc.Name, i+1, step.Op)
		}

		writeTraceLine(&trace, i+1, step, receipt, err)

		if step.ExpectError == "" {
			require.NoError(t, err, "scenario %s step %d", sc.Name, i+1)
		} else {
			require.Error(t, err, "scenario %s step %d: expected %s", sc.Name, i+1, step.ExpectError)
			require.Equal(t, step.ExpectError, string(ledger.CodeOf(err)),
				"scenario %s step %d", sc.Name, i+1)
		}
	}

	// Drain outstanding transfer completions before final assertions.
	transferer.Close()

	for _, fs := range sc.Final {
		l, err := eng.GetListing(ctx, fs.ID)
		require.NoError(t, err)
		require.NotNil(t, l, "scenario %s: final listing %q missing", sc.Name, fs.ID)
		if fs.Owner != nil {
			require.Equal(t, *fs.Owner, l.Owner, "listing %q owner", fs.ID)
		}
		if fs.Sold != nil {
			require.Equal(t, *fs.Sold, l.Sold, "listing %q sold", fs.ID)
		}
		if fs.TotalDonor != nil {
			require.Equal(t, *fs.TotalDonor, l.TotalDonor, "listing %q total_donor", fs.ID)
		}
		if fs.TotalDonation != nil {
			require.Equal(t, ledger.Amount(*fs.TotalDonation), l.TotalDonation,
				"listing %q total_donation", fs.ID)
		}
	}

	return trace.Bytes()
}

// RunWithGolden executes the scenario and compares its trace against
// the golden file testdata/<name>.golden. Regenerate with -update.
func RunWithGolden(t *testing.T, sc *Scenario) {
	t.Helper()
	trace := Run(t, sc)
	g := goldie.New(t)
	g.Assert(t, sc.Name, trace)
}

// writeTraceLine appends one deterministic line per step.
func writeTraceLine(buf *bytes.Buffer, n int, step Step, receipt *engine.SettlementReceipt, err error) {
	switch {
	case err != nil && ledger.CodeOf(err) != "":
		fmt.Fprintf(buf, "step %d: %s %s attached=%d -> %s\n",
			n, step.Op, stepTarget(step), step.Attached, ledger.CodeOf(err))
	case err != nil:
		fmt.Fprintf(buf, "step %d: %s %s attached=%d -> error\n",
			n, step.Op, stepTarget(step), step.Attached)
	case receipt != nil:
		fmt.Fprintf(buf, "step %d: %s %s attached=%d -> ok receipt=%s payee=%s\n",
			n, step.Op, stepTarget(step), step.Attached, receipt.ReceiptID, receipt.Payee)
	default:
		fmt.Fprintf(buf, "step %d: %s %s attached=%d -> ok\n",
			n, step.Op, stepTarget(step), step.Attached)
	}
}

func stepTarget(step Step) string {
	if step.Op == "create" && step.Listing != nil {
		return step.Listing.ID
	}
	return step.ID
}
