package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadValidate_RejectsEmptyID(t *testing.T) {
	p := Payload{Kind: KindProduct, Price: 100}
	assert.Error(t, p.Validate())
}

func TestPayloadValidate_RejectsUnknownKind(t *testing.T) {
	p := Payload{ID: "p1", Kind: "auction"}
	assert.Error(t, p.Validate())
}

func TestPayloadValidate_NormalizesIDToNFC(t *testing.T) {
	// "e" + combining acute accent composes to a single rune under NFC,
	// so both spellings of an id hit the same store key.
	p := Payload{ID: "cafe\u0301", Kind: KindProduct, Price: 1}
	require.NoError(t, p.Validate())
	assert.Equal(t, "caf\u00e9", p.ID)
}

func TestNewListing_Product(t *testing.T) {
	p := Payload{
		ID:       "p1",
		Name:     "Goat",
		Location: "Phnom Penh",
		Kind:     KindProduct,
		Price:    100,
	}

	l, err := NewListing(p, "alice.near", 0)
	require.NoError(t, err)

	assert.Equal(t, "p1", l.ID)
	assert.Equal(t, "alice.near", l.Owner)
	assert.Equal(t, Amount(100), l.Price)
	assert.Equal(t, uint32(0), l.Sold)
	assert.Equal(t, Amount(0), l.DonationUnit)
}

func TestNewListing_ProjectCapturesDepositAsDonationUnit(t *testing.T) {
	p := Payload{
		ID:               "well",
		Name:             "Village well",
		Kind:             KindProject,
		TargetInvestment: 5000,
	}

	l, err := NewListing(p, "ngo.near", 10)
	require.NoError(t, err)

	assert.Equal(t, Amount(10), l.DonationUnit)
	assert.Equal(t, Amount(5000), l.TargetInvestment)
	assert.Equal(t, uint32(0), l.TotalDonor)
	assert.Equal(t, Amount(0), l.TotalDonation)
}

func TestNewListing_ProductIgnoresDeposit(t *testing.T) {
	p := Payload{ID: "p1", Kind: KindProduct, Price: 100}

	l, err := NewListing(p, "alice.near", 42)
	require.NoError(t, err)

	assert.Equal(t, Amount(0), l.DonationUnit)
	assert.Equal(t, Amount(100), l.Price)
}

func TestNewListing_RequiresOwner(t *testing.T) {
	p := Payload{ID: "p1", Kind: KindProduct, Price: 100}
	_, err := NewListing(p, "", 0)
	assert.Error(t, err)
}
