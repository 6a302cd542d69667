package ledger

// TransferStatus tracks an outbound transfer through its lifecycle.
type TransferStatus string

const (
	// TransferScheduled: the settlement call queued the transfer and
	// returned. The host has not yet confirmed it.
	TransferScheduled TransferStatus = "scheduled"

	// TransferSettled: the host confirmed the transfer.
	TransferSettled TransferStatus = "settled"

	// TransferFailed: the host reported failure. The engine has rolled
	// back the counter increment recorded for this receipt.
	TransferFailed TransferStatus = "failed"
)

// Transfer is one journaled outbound payment from contract custody to a
// listing owner. The journal exists because transfer completion is
// observed strictly after the settlement call returns: it anchors the
// failure rollback and gives operators an audit point for the
// inconsistency window.
type Transfer struct {
	ReceiptID string         `json:"receipt_id"`
	ListingID string         `json:"listing_id"`
	Payer     string         `json:"payer"`
	Payee     string         `json:"payee"`
	Amount    Amount         `json:"amount"`
	Status    TransferStatus `json:"status"`
}
