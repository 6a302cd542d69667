// Package ledger defines the domain records for the souk listing
// registry: listings, creation payloads, base-unit amounts, and the
// coded errors returned by the entry points.
//
// A Listing is the central entity. It is created once by the factory
// (NewListing), mutated only by the settlement engine through
// RecordSettlement, and never deleted. Two settlement kinds share one
// record shape:
//
//   - KindProduct: fixed-price sale, counts units sold
//   - KindProject: per-donation crowdfunding, accumulates donations
//
// Records are persisted and exported as versioned CBOR (encode.go) so
// the on-disk encoding stays stable across releases.
//
// Invariants:
//   - ID and Owner never change after creation
//   - Sold, TotalDonor, TotalDonation never decrease, except through
//     RollbackSettlement which exactly undoes one RecordSettlement
//     after a failed outbound transfer
//   - Price, TargetInvestment, and DonationUnit are fixed at creation
package ledger
