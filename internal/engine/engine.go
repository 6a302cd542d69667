package engine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Sakal05/souk/internal/ledger"
	"github.com/Sakal05/souk/internal/store"
)

// DefaultCustodyAccount names the contract-custody side of every
// outbound transfer in the journal.
const DefaultCustodyAccount = "souk.custody"

// Engine executes the registry's state-transition entry points against
// the store and the host's transfer capability.
//
// Thread-safety model:
//   - every mutating entry point (Initialize, CreateListing, Settle)
//     and the transfer-completion hook run under one mutex, so a
//     get-then-put pair is never interleaved with another call's write
//   - pure reads (GetListing, ListListings, ListTransfers) delegate to
//     the store without the mutex; the single-writer connection makes
//     each read atomic and never stale
type Engine struct {
	mu        sync.Mutex
	store     *store.Store
	transfers Transferer
	receipts  ReceiptGenerator
	custody   string
}

// Option configures engine parameters.
type Option func(*Engine)

// WithReceiptGenerator overrides the receipt id generator.
// Use NewFixedGenerator for deterministic tests.
func WithReceiptGenerator(g ReceiptGenerator) Option {
	return func(e *Engine) {
		e.receipts = g
	}
}

// WithCustodyAccount overrides the custody account name journaled as
// the payer of outbound transfers.
func WithCustodyAccount(account string) Option {
	return func(e *Engine) {
		e.custody = account
	}
}

// New creates an Engine over the given store and transfer capability.
// Receipt ids default to UUIDv7.
func New(s *store.Store, t Transferer, opts ...Option) *Engine {
	e := &Engine{
		store:     s,
		transfers: t,
		receipts:  UUIDv7Generator{},
		custody:   DefaultCustodyAccount,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize prepares an empty registry. Fails with REINIT_ATTEMPTED if
// the registry has already been initialized.
func (e *Engine) Initialize(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Initialize(ctx)
}

// CreateListing validates the payload, builds the listing with the
// caller as owner, and registers it.
//
// The duplicate-id check happens here, before the factory runs: a
// silent overwrite would hand an existing id to a new owner, so a
// collision fails fast with DUPLICATE_LISTING and leaves the first
// listing untouched.
//
// For a project listing the attached deposit becomes the per-donation
// unit; for a product listing it is ignored.
func (e *Engine) CreateListing(ctx context.Context, p ledger.Payload, caller string, attached ledger.Amount) (*ledger.Listing, error) {
	if attached < 0 {
		return nil, ledger.NewValidationError("create listing: attached deposit must not be negative")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := p.Validate(); err != nil {
		return nil, err
	}
	existing, err := e.store.GetListing(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ledger.NewDuplicateListingError(p.ID)
	}

	l, err := ledger.NewListing(p, caller, attached)
	if err != nil {
		return nil, err
	}
	if err := e.store.PutListing(ctx, l); err != nil {
		return nil, err
	}

	slog.Info("listing created",
		"listing", l.ID,
		"kind", l.Kind,
		"owner", l.Owner)
	return l, nil
}

// SettlementReceipt is the success marker returned by Settle.
type SettlementReceipt struct {
	ReceiptID string        `json:"receipt_id"`
	ListingID string        `json:"listing_id"`
	Payee     string        `json:"payee"`
	Amount    ledger.Amount `json:"amount"`
}

// Settle executes a buy (product) or donation (project) against a
// listing.
//
// The attached deposit must equal the listing's required amount
// exactly; any mismatch fails with AMOUNT_MISMATCH before any transfer
// or counter change, and an unknown id fails with LISTING_NOT_FOUND
// moving nothing. On success exactly one outbound transfer of the
// deposit to the listing owner is journaled and scheduled, the counters
// are applied, and the listing is written back.
//
// The transfer resolves asynchronously, strictly after Settle returns.
// If the host reports failure the completion hook rolls back the
// counter increment made here and marks the journal row failed; until
// then the sale/donation is visible while the value is still in
// flight. This window is inherent to scheduling-then-committing and is
// bounded by the rollback.
func (e *Engine) Settle(ctx context.Context, listingID, caller string, attached ledger.Amount) (*SettlementReceipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	l, err := e.store.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ledger.NewListingNotFoundError(listingID)
	}

	required := l.RequiredAmount()
	if attached != required {
		return nil, ledger.NewAmountMismatchError(listingID, required, attached)
	}

	receiptID := e.receipts.Generate()
	transfer := ledger.Transfer{
		ReceiptID: receiptID,
		ListingID: l.ID,
		Payer:     e.custody,
		Payee:     l.Owner,
		Amount:    attached,
		Status:    ledger.TransferScheduled,
	}
	if err := e.store.RecordTransfer(ctx, transfer); err != nil {
		return nil, err
	}

	// The completion callback fires on the transferer's goroutine and
	// takes e.mu, so it cannot run before this call commits.
	amount := attached
	e.transfers.Schedule(transfer, func(transferErr error) {
		e.resolveTransfer(receiptID, listingID, amount, transferErr)
	})

	l.RecordSettlement(attached)
	if err := e.store.PutListing(ctx, l); err != nil {
		return nil, err
	}

	slog.Info("settlement recorded",
		"listing", l.ID,
		"kind", l.Kind,
		"caller", caller,
		"amount", attached,
		"receipt", receiptID)

	return &SettlementReceipt{
		ReceiptID: receiptID,
		ListingID: l.ID,
		Payee:     l.Owner,
		Amount:    attached,
	}, nil
}

// resolveTransfer is the transfer-completion hook. On success the
// journal row becomes settled; on failure it becomes failed and the
// counter increment recorded for this receipt is rolled back.
//
// Runs on the transferer's goroutine with a background context: the
// settlement call that scheduled the transfer has long since returned.
func (e *Engine) resolveTransfer(receiptID, listingID string, amount ledger.Amount, transferErr error) {
	ctx := context.Background()

	e.mu.Lock()
	defer e.mu.Unlock()

	if transferErr == nil {
		if err := e.store.ResolveTransfer(ctx, receiptID, ledger.TransferSettled); err != nil {
			slog.Error("failed to mark transfer settled", "receipt", receiptID, "error", err)
		}
		return
	}

	if err := e.store.ResolveTransfer(ctx, receiptID, ledger.TransferFailed); err != nil {
		slog.Error("failed to mark transfer failed", "receipt", receiptID, "error", err)
		return
	}

	l, err := e.store.GetListing(ctx, listingID)
	if err != nil || l == nil {
		slog.Error("cannot roll back settlement: listing unavailable",
			"receipt", receiptID, "listing", listingID, "error", err)
		return
	}
	if err := l.RollbackSettlement(amount); err != nil {
		slog.Error("cannot roll back settlement", "receipt", receiptID, "error", err)
		return
	}
	if err := e.store.PutListing(ctx, l); err != nil {
		slog.Error("failed to write rolled-back listing", "receipt", receiptID, "error", err)
		return
	}

	slog.Warn("settlement rolled back after transfer failure",
		"receipt", receiptID,
		"listing", listingID,
		"amount", amount,
		"error", transferErr)
}

// GetListing returns the listing for id, or (nil, nil) when absent.
// Pure read, no failure modes beyond storage errors.
func (e *Engine) GetListing(ctx context.Context, id string) (*ledger.Listing, error) {
	return e.store.GetListing(ctx, id)
}

// ListListings returns every listing in the store's stable enumeration
// order.
func (e *Engine) ListListings(ctx context.Context) ([]*ledger.Listing, error) {
	return e.store.ListListings(ctx)
}

// ListTransfers returns the outbound-transfer journal in scheduling
// order.
func (e *Engine) ListTransfers(ctx context.Context) ([]ledger.Transfer, error) {
	return e.store.ListTransfers(ctx)
}
