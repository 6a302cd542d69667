package ledger

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// recordVersion is bumped whenever the persisted record layout changes
// incompatibly. Decoders reject versions they do not know.
const recordVersion = 1

// listingRecord is the on-disk CBOR envelope for a Listing. Integer
// keys keep the encoding compact and stable: appending a field gets a
// new key, existing keys are never reused.
type listingRecord struct {
	Version          int    `cbor:"0,keyasint"`
	ID               string `cbor:"1,keyasint"`
	Name             string `cbor:"2,keyasint"`
	Description      string `cbor:"3,keyasint"`
	Image            string `cbor:"4,keyasint"`
	Location         string `cbor:"5,keyasint"`
	Owner            string `cbor:"6,keyasint"`
	Kind             string `cbor:"7,keyasint"`
	Price            int64  `cbor:"8,keyasint"`
	Sold             uint32 `cbor:"9,keyasint"`
	TargetInvestment int64  `cbor:"10,keyasint"`
	DonationUnit     int64  `cbor:"11,keyasint"`
	TotalDonor       uint32 `cbor:"12,keyasint"`
	TotalDonation    int64  `cbor:"13,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	// Core deterministic encoding: same record, same bytes.
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{DupMapKey: cbor.DupMapKeyEnforcedAPF}.DecMode()
	if err != nil {
		panic(err)
	}
}

// EncodeListing serializes a listing as a versioned CBOR record.
func EncodeListing(l *Listing) ([]byte, error) {
	rec := listingRecord{
		Version:          recordVersion,
		ID:               l.ID,
		Name:             l.Name,
		Description:      l.Description,
		Image:            l.Image,
		Location:         l.Location,
		Owner:            l.Owner,
		Kind:             string(l.Kind),
		Price:            int64(l.Price),
		Sold:             l.Sold,
		TargetInvestment: int64(l.TargetInvestment),
		DonationUnit:     int64(l.DonationUnit),
		TotalDonor:       l.TotalDonor,
		TotalDonation:    int64(l.TotalDonation),
	}
	data, err := encMode.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode listing %q: %w", l.ID, err)
	}
	return data, nil
}

// DecodeListing parses a versioned CBOR record back into a Listing.
func DecodeListing(data []byte) (*Listing, error) {
	var rec listingRecord
	if err := decMode.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode listing record: %w", err)
	}
	if rec.Version != recordVersion {
		return nil, fmt.Errorf("decode listing record: unsupported version %d", rec.Version)
	}
	return &Listing{
		ID:               rec.ID,
		Name:             rec.Name,
		Description:      rec.Description,
		Image:            rec.Image,
		Location:         rec.Location,
		Owner:            rec.Owner,
		Kind:             Kind(rec.Kind),
		Price:            Amount(rec.Price),
		Sold:             rec.Sold,
		TargetInvestment: Amount(rec.TargetInvestment),
		DonationUnit:     Amount(rec.DonationUnit),
		TotalDonor:       rec.TotalDonor,
		TotalDonation:    Amount(rec.TotalDonation),
	}, nil
}
