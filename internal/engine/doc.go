// Package engine implements the settlement core of the souk listing
// registry: listing creation (factory + duplicate fail-fast) and the
// buy/donate settlement path.
//
// A settlement validates the attached deposit against the listing's
// stored terms, journals and schedules exactly one outbound transfer to
// the listing owner, applies the counter update, and returns a receipt.
// Transfer completion is observed asynchronously, strictly after the
// settlement call returns; on reported failure the engine rolls back
// the counter increment it made for that receipt.
//
// Entry points are serialized by a single mutex. The original host
// executed calls strictly one at a time; once exposed over HTTP that
// guarantee has to be re-established locally so a read-modify-write
// pair is never interleaved with another call's write.
package engine
