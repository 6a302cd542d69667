package store

import (
	"context"
	"testing"

	"github.com/Sakal05/souk/internal/ledger"
)

func productListing(id string, price ledger.Amount) *ledger.Listing {
	return &ledger.Listing{
		ID:    id,
		Name:  "listing " + id,
		Owner: "alice.near",
		Kind:  ledger.KindProduct,
		Price: price,
	}
}

func TestPutListing_InsertThenGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.PutListing(ctx, productListing("p1", 100)); err != nil {
		t.Fatalf("PutListing() failed: %v", err)
	}

	got, err := s.GetListing(ctx, "p1")
	if err != nil {
		t.Fatalf("GetListing() failed: %v", err)
	}
	if got == nil {
		t.Fatal("GetListing() returned nil for existing id")
	}
	if got.Price != 100 || got.Owner != "alice.near" {
		t.Errorf("GetListing() = %+v, want price=100 owner=alice.near", got)
	}
}

func TestPutListing_ReplaceKeepsInsertionOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		if err := s.PutListing(ctx, productListing(id, 1)); err != nil {
			t.Fatalf("PutListing(%q) failed: %v", id, err)
		}
	}

	// Rewriting "c" must not move it to the end of the enumeration.
	updated := productListing("c", 1)
	updated.Sold = 5
	if err := s.PutListing(ctx, updated); err != nil {
		t.Fatalf("PutListing(replace) failed: %v", err)
	}

	listings, err := s.ListListings(ctx)
	if err != nil {
		t.Fatalf("ListListings() failed: %v", err)
	}

	wantOrder := []string{"c", "a", "b"}
	if len(listings) != len(wantOrder) {
		t.Fatalf("ListListings() returned %d listings, want %d", len(listings), len(wantOrder))
	}
	for i, id := range wantOrder {
		if listings[i].ID != id {
			t.Errorf("position %d = %q, want %q", i, listings[i].ID, id)
		}
	}
	if listings[0].Sold != 5 {
		t.Errorf("replaced listing sold = %d, want 5", listings[0].Sold)
	}
}

func TestRecordTransfer_AndResolve(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.PutListing(ctx, productListing("p1", 100)); err != nil {
		t.Fatalf("PutListing() failed: %v", err)
	}

	tr := ledger.Transfer{
		ReceiptID: "r-1",
		ListingID: "p1",
		Payer:     "souk.custody",
		Payee:     "alice.near",
		Amount:    100,
		Status:    ledger.TransferScheduled,
	}
	if err := s.RecordTransfer(ctx, tr); err != nil {
		t.Fatalf("RecordTransfer() failed: %v", err)
	}

	if err := s.ResolveTransfer(ctx, "r-1", ledger.TransferSettled); err != nil {
		t.Fatalf("ResolveTransfer() failed: %v", err)
	}

	got, err := s.GetTransfer(ctx, "r-1")
	if err != nil {
		t.Fatalf("GetTransfer() failed: %v", err)
	}
	if got == nil || got.Status != ledger.TransferSettled {
		t.Errorf("GetTransfer() = %+v, want status settled", got)
	}

	// A resolved transfer cannot be resolved again.
	if err := s.ResolveTransfer(ctx, "r-1", ledger.TransferFailed); err == nil {
		t.Error("ResolveTransfer() on settled transfer succeeded, want error")
	}
}

func TestResolveTransfer_UnknownReceipt(t *testing.T) {
	s := openTestStore(t)

	err := s.ResolveTransfer(context.Background(), "no-such-receipt", ledger.TransferSettled)
	if err == nil {
		t.Error("ResolveTransfer() on unknown receipt succeeded, want error")
	}
}
