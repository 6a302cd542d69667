package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredAmount_Product(t *testing.T) {
	l := &Listing{ID: "p1", Kind: KindProduct, Price: 100}
	assert.Equal(t, Amount(100), l.RequiredAmount())
}

func TestRequiredAmount_Project(t *testing.T) {
	l := &Listing{ID: "well", Kind: KindProject, DonationUnit: 10, TargetInvestment: 5000}
	assert.Equal(t, Amount(10), l.RequiredAmount())
}

func TestRecordSettlement_Product(t *testing.T) {
	l := &Listing{ID: "p1", Kind: KindProduct, Price: 100}

	l.RecordSettlement(100)
	l.RecordSettlement(100)

	assert.Equal(t, uint32(2), l.Sold)
	assert.Equal(t, uint32(0), l.TotalDonor)
	assert.Equal(t, Amount(0), l.TotalDonation)
}

func TestRecordSettlement_Project(t *testing.T) {
	l := &Listing{ID: "well", Kind: KindProject, DonationUnit: 10}

	l.RecordSettlement(10)
	l.RecordSettlement(10)

	assert.Equal(t, uint32(2), l.TotalDonor)
	assert.Equal(t, Amount(20), l.TotalDonation)
	assert.Equal(t, uint32(0), l.Sold)
}

func TestRollbackSettlement_Product(t *testing.T) {
	l := &Listing{ID: "p1", Kind: KindProduct, Price: 100}
	l.RecordSettlement(100)

	require.NoError(t, l.RollbackSettlement(100))
	assert.Equal(t, uint32(0), l.Sold)

	// Nothing left to undo.
	assert.Error(t, l.RollbackSettlement(100))
}

func TestRollbackSettlement_Project(t *testing.T) {
	l := &Listing{ID: "well", Kind: KindProject, DonationUnit: 10}
	l.RecordSettlement(10)

	require.NoError(t, l.RollbackSettlement(10))
	assert.Equal(t, uint32(0), l.TotalDonor)
	assert.Equal(t, Amount(0), l.TotalDonation)

	assert.Error(t, l.RollbackSettlement(10))
}

func TestClone_Independent(t *testing.T) {
	l := &Listing{ID: "p1", Kind: KindProduct, Price: 100, Sold: 1}
	c := l.Clone()

	c.Sold = 99
	c.Name = "changed"

	assert.Equal(t, uint32(1), l.Sold)
	assert.Empty(t, l.Name)
}

func TestValidKind(t *testing.T) {
	assert.True(t, ValidKind(KindProduct))
	assert.True(t, ValidKind(KindProject))
	assert.False(t, ValidKind(Kind("auction")))
	assert.False(t, ValidKind(Kind("")))
}
