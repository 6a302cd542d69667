package store

import (
	"context"
	"fmt"

	"github.com/Sakal05/souk/internal/ledger"
)

// PutListing inserts or replaces the listing record keyed by its id.
// Never fails for a well-formed listing.
//
// An insert assigns the next sequence number; a replace keeps the
// original one, so enumeration order is stable insertion order
// regardless of how often a listing is rewritten.
func (s *Store) PutListing(ctx context.Context, l *ledger.Listing) error {
	record, err := ledger.EncodeListing(l)
	if err != nil {
		return fmt.Errorf("put listing: %w", err)
	}

	// Single writer connection: the subquery and insert are not racy.
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO listings (id, seq, kind, record)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM listings), ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			record = excluded.record
	`,
		l.ID,
		string(l.Kind),
		record,
	)
	if err != nil {
		return fmt.Errorf("put listing: %w", err)
	}

	return nil
}

// RecordTransfer journals a newly scheduled outbound transfer.
func (s *Store) RecordTransfer(ctx context.Context, t ledger.Transfer) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transfers (receipt_id, listing_id, payer, payee, amount, status, seq)
		VALUES (?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM transfers))
	`,
		t.ReceiptID,
		t.ListingID,
		t.Payer,
		t.Payee,
		int64(t.Amount),
		string(t.Status),
	)
	if err != nil {
		return fmt.Errorf("record transfer: %w", err)
	}

	return nil
}

// ResolveTransfer moves a journaled transfer to its terminal status
// (settled or failed). Resolving an unknown receipt is an error: every
// completion the host reports must match a scheduled transfer.
func (s *Store) ResolveTransfer(ctx context.Context, receiptID string, status ledger.TransferStatus) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE transfers SET status = ?
		WHERE receipt_id = ? AND status = ?
	`,
		string(status),
		receiptID,
		string(ledger.TransferScheduled),
	)
	if err != nil {
		return fmt.Errorf("resolve transfer: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("resolve transfer: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("resolve transfer: no scheduled transfer with receipt %q", receiptID)
	}

	return nil
}
