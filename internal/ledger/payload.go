package ledger

import (
	"golang.org/x/text/unicode/norm"
)

// Payload is the caller-supplied half of a new listing: the editable
// fields minus everything host-derived (owner, counters, attached
// deposit). It is consumed exactly once by NewListing and not retained.
type Payload struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image" yaml:"image"`
	Location    string `json:"location" yaml:"location"`
	Kind        Kind   `json:"kind" yaml:"kind"`

	// Price applies to KindProduct, TargetInvestment to KindProject.
	Price            Amount `json:"price,omitempty" yaml:"price,omitempty"`
	TargetInvestment Amount `json:"target_investment,omitempty" yaml:"target_investment,omitempty"`
}

// Validate checks the payload and normalizes its identifier to NFC so
// byte-wise key lookups are stable regardless of how the caller
// composed the string.
func (p *Payload) Validate() error {
	p.ID = norm.NFC.String(p.ID)
	p.Name = norm.NFC.String(p.Name)

	if p.ID == "" {
		return NewValidationError("payload: listing id must not be empty")
	}
	if !ValidKind(p.Kind) {
		return NewValidationError("payload: unknown listing kind %q", p.Kind)
	}
	if p.Price < 0 || p.TargetInvestment < 0 {
		return NewValidationError("payload: amounts must not be negative")
	}
	return nil
}

// NewListing builds a Listing from a validated payload plus the
// host-observed creator identity and attached deposit. This is the
// listing factory: it constructs the record and nothing else - the
// caller decides whether the record reaches the store, and performs the
// duplicate-id check before invoking it.
//
// For KindProject the attached deposit becomes the listing's
// per-donation unit. For KindProduct the deposit is ignored.
func NewListing(p Payload, owner string, attached Amount) (*Listing, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if owner == "" {
		return nil, NewValidationError("new listing: owner identity must not be empty")
	}

	l := &Listing{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Location:    p.Location,
		Owner:       owner,
		Kind:        p.Kind,
	}
	switch p.Kind {
	case KindProject:
		l.TargetInvestment = p.TargetInvestment
		l.DonationUnit = attached
	default:
		l.Price = p.Price
	}
	return l, nil
}
