// Package store provides SQLite-backed durable storage for the souk
// listing registry.
//
// Three tables:
//   - listings: the key-value registry itself, one CBOR record per id
//   - transfers: a journal of scheduled/settled/failed outbound payments
//   - meta: singleton registry state (init marker)
//
// # Critical Patterns
//
// Stable enumeration
//   - listings carry a seq assigned at insert and preserved on replace
//   - All scans order by: seq ASC, id ASC COLLATE BINARY
//   - Two enumerations with no intervening writes return the same order
//
// Read-after-write
//   - Single writer connection; a get immediately after a put observes
//     the put, including mid-settlement writes for the same id
//
// Option-style gets
//   - GetListing/GetTransfer return (nil, nil) for absence; only the
//     engine converts absence into a LISTING_NOT_FOUND failure
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
