package engine

import (
	"sync"

	"github.com/google/uuid"
)

// ReceiptGenerator generates unique receipt ids for settlements.
// Implemented by UUIDv7Generator (production) and FixedGenerator
// (tests).
type ReceiptGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 receipt ids.
//
// UUIDv7 embeds a timestamp in the most significant bits, making
// receipts sortable by settlement time, which is helpful when reading
// the transfer journal.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent
// use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined receipt ids for testing.
// Enables deterministic settlement traces and golden comparison.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
// Generate panics once all ids are consumed - a test asking for more
// receipts than it planned is a test bug.
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next predetermined id.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.ids) {
		panic("FixedGenerator: all receipt ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
