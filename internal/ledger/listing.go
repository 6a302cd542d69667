package ledger

import "fmt"

// Kind selects the settlement terms of a listing.
type Kind string

const (
	// KindProduct is a fixed-price marketplace listing. Every
	// settlement must attach exactly Price and increments Sold.
	KindProduct Kind = "product"

	// KindProject is a crowdfunding listing. Every settlement must
	// attach exactly DonationUnit and increments TotalDonor while
	// accumulating TotalDonation.
	KindProject Kind = "project"
)

// ValidKind reports whether k is a known settlement kind.
func ValidKind(k Kind) bool {
	return k == KindProduct || k == KindProject
}

// Listing is a registered marketplace or crowdfunding entry.
//
// ID and Owner are fixed at creation: Owner is always the identity that
// created the listing, never a later settler. The counters are mutated
// only by the settlement engine, exactly once per successful
// settlement.
type Listing struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Location    string `json:"location"`
	Owner       string `json:"owner"`
	Kind        Kind   `json:"kind"`

	// Fixed-price terms (KindProduct).
	Price Amount `json:"price,omitempty"`
	Sold  uint32 `json:"sold"`

	// Crowdfunding terms (KindProject). TargetInvestment is
	// informational only - it is never enforced as a cap.
	//
	// DonationUnit is the deposit attached when the listing was
	// created, and every later donation must match it exactly. The
	// unit being captured at creation rather than per donation is
	// deliberate, inherited behavior; see DESIGN.md.
	TargetInvestment Amount `json:"target_investment,omitempty"`
	DonationUnit     Amount `json:"donation_unit,omitempty"`
	TotalDonor       uint32 `json:"total_donor"`
	TotalDonation    Amount `json:"total_donation"`
}

// RequiredAmount returns the exact deposit a settlement call must
// attach: the price for a product, the per-donation unit for a project.
func (l *Listing) RequiredAmount() Amount {
	if l.Kind == KindProject {
		return l.DonationUnit
	}
	return l.Price
}

// RecordSettlement applies one successful settlement to the counters.
// The caller has already validated amount == RequiredAmount().
func (l *Listing) RecordSettlement(amount Amount) {
	switch l.Kind {
	case KindProject:
		l.TotalDonor++
		l.TotalDonation += amount
	default:
		l.Sold++
	}
}

// RollbackSettlement undoes exactly one RecordSettlement(amount).
// Used only by the engine's transfer-failure hook; it is the single
// path by which a counter may decrease.
func (l *Listing) RollbackSettlement(amount Amount) error {
	switch l.Kind {
	case KindProject:
		if l.TotalDonor == 0 || l.TotalDonation < amount {
			return fmt.Errorf("rollback settlement: listing %q has no donation of %s to undo", l.ID, amount)
		}
		l.TotalDonor--
		l.TotalDonation -= amount
	default:
		if l.Sold == 0 {
			return fmt.Errorf("rollback settlement: listing %q has no sale to undo", l.ID)
		}
		l.Sold--
	}
	return nil
}

// Clone returns an independent copy of the listing.
func (l *Listing) Clone() *Listing {
	c := *l
	return &c
}
