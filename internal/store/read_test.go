package store

import (
	"context"
	"testing"

	"github.com/Sakal05/souk/internal/ledger"
)

func TestGetListing_AbsentIsNilNil(t *testing.T) {
	s := openTestStore(t)

	got, err := s.GetListing(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetListing() failed: %v", err)
	}
	if got != nil {
		t.Errorf("GetListing(missing) = %+v, want nil", got)
	}
}

func TestListListings_EmptyIsNotNil(t *testing.T) {
	s := openTestStore(t)

	listings, err := s.ListListings(context.Background())
	if err != nil {
		t.Fatalf("ListListings() failed: %v", err)
	}
	if listings == nil {
		t.Error("ListListings() returned nil, want empty slice")
	}
	if len(listings) != 0 {
		t.Errorf("ListListings() returned %d listings, want 0", len(listings))
	}
}

func TestListListings_StableOrderAcrossCalls(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ids := []string{"z", "m", "a", "q"}
	for _, id := range ids {
		if err := s.PutListing(ctx, productListing(id, 1)); err != nil {
			t.Fatalf("PutListing(%q) failed: %v", id, err)
		}
	}

	first, err := s.ListListings(ctx)
	if err != nil {
		t.Fatalf("first ListListings() failed: %v", err)
	}
	second, err := s.ListListings(ctx)
	if err != nil {
		t.Fatalf("second ListListings() failed: %v", err)
	}

	if len(first) != len(ids) || len(second) != len(ids) {
		t.Fatalf("enumeration sizes %d/%d, want %d", len(first), len(second), len(ids))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("position %d differs across calls: %q vs %q", i, first[i].ID, second[i].ID)
		}
		if first[i].ID != ids[i] {
			t.Errorf("position %d = %q, want insertion order %q", i, first[i].ID, ids[i])
		}
	}
}

func TestListTransfers_EmptyIsNotNil(t *testing.T) {
	s := openTestStore(t)

	transfers, err := s.ListTransfers(context.Background())
	if err != nil {
		t.Fatalf("ListTransfers() failed: %v", err)
	}
	if transfers == nil {
		t.Error("ListTransfers() returned nil, want empty slice")
	}
}

func TestGetTransfer_AbsentIsNilNil(t *testing.T) {
	s := openTestStore(t)

	got, err := s.GetTransfer(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetTransfer() failed: %v", err)
	}
	if got != nil {
		t.Errorf("GetTransfer(missing) = %+v, want nil", got)
	}
}

func TestListTransfers_SchedulingOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.PutListing(ctx, productListing("p1", 1)); err != nil {
		t.Fatalf("PutListing() failed: %v", err)
	}
	for _, id := range []string{"r-3", "r-1", "r-2"} {
		tr := ledger.Transfer{
			ReceiptID: id,
			ListingID: "p1",
			Payer:     "souk.custody",
			Payee:     "alice.near",
			Amount:    1,
			Status:    ledger.TransferScheduled,
		}
		if err := s.RecordTransfer(ctx, tr); err != nil {
			t.Fatalf("RecordTransfer(%q) failed: %v", id, err)
		}
	}

	transfers, err := s.ListTransfers(ctx)
	if err != nil {
		t.Fatalf("ListTransfers() failed: %v", err)
	}

	wantOrder := []string{"r-3", "r-1", "r-2"}
	if len(transfers) != len(wantOrder) {
		t.Fatalf("ListTransfers() returned %d, want %d", len(transfers), len(wantOrder))
	}
	for i, id := range wantOrder {
		if transfers[i].ReceiptID != id {
			t.Errorf("position %d = %q, want scheduling order %q", i, transfers[i].ReceiptID, id)
		}
	}
}
