package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Sakal05/souk/internal/ledger"
)

// GetListing returns the latest committed record for id, or (nil, nil)
// when no such listing exists. Absence is not an error here - only the
// settlement engine turns it into LISTING_NOT_FOUND.
func (s *Store) GetListing(ctx context.Context, id string) (*ledger.Listing, error) {
	var record []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM listings WHERE id = ?`, id,
	).Scan(&record)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}

	l, err := ledger.DecodeListing(record)
	if err != nil {
		return nil, fmt.Errorf("get listing %q: %w", id, err)
	}
	return l, nil
}

// ListListings returns every listing in deterministic order: insertion
// sequence, then id with binary collation as a tiebreak. Two calls with
// no intervening writes return the same order.
//
// Returns an empty slice (not nil) when the registry is empty.
func (s *Store) ListListings(ctx context.Context) ([]*ledger.Listing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT record FROM listings
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	var listings []*ledger.Listing
	for rows.Next() {
		var record []byte
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("list listings: scan: %w", err)
		}
		l, err := ledger.DecodeListing(record)
		if err != nil {
			return nil, fmt.Errorf("list listings: %w", err)
		}
		listings = append(listings, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list listings: iterate: %w", err)
	}

	if listings == nil {
		listings = []*ledger.Listing{}
	}

	return listings, nil
}

// GetTransfer returns the journaled transfer for a receipt id, or
// (nil, nil) when no such receipt exists.
func (s *Store) GetTransfer(ctx context.Context, receiptID string) (*ledger.Transfer, error) {
	t := &ledger.Transfer{}
	var amount int64
	var status string
	err := s.db.QueryRowContext(ctx, `
		SELECT receipt_id, listing_id, payer, payee, amount, status
		FROM transfers WHERE receipt_id = ?
	`, receiptID).Scan(&t.ReceiptID, &t.ListingID, &t.Payer, &t.Payee, &amount, &status)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	t.Amount = ledger.Amount(amount)
	t.Status = ledger.TransferStatus(status)
	return t, nil
}

// ListTransfers returns the full transfer journal in scheduling order.
// Returns an empty slice (not nil) when no transfers exist.
func (s *Store) ListTransfers(ctx context.Context) ([]ledger.Transfer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT receipt_id, listing_id, payer, payee, amount, status
		FROM transfers
		ORDER BY seq ASC, receipt_id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var transfers []ledger.Transfer
	for rows.Next() {
		var t ledger.Transfer
		var amount int64
		var status string
		if err := rows.Scan(&t.ReceiptID, &t.ListingID, &t.Payer, &t.Payee, &amount, &status); err != nil {
			return nil, fmt.Errorf("list transfers: scan: %w", err)
		}
		t.Amount = ledger.Amount(amount)
		t.Status = ledger.TransferStatus(status)
		transfers = append(transfers, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transfers: iterate: %w", err)
	}

	if transfers == nil {
		transfers = []ledger.Transfer{}
	}

	return transfers, nil
}
