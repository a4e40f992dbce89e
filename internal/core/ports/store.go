// internal/core/ports/store.go
package ports

import (
	"context"
	"time"
)

// KeyValueStore is the persistence contract for the whole system: an external
// service holding one serialized JSON array per collection key. There is no
// cross-key transaction; every collection is read and written as a single blob.
type KeyValueStore interface {
	// Get returns the serialized value for key. found is false when the key is
	// absent, which callers treat as an empty collection.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// Well-known collection keys. The cart key is ephemeral scratch state; the
// others are the durable system of record.
const (
	KeyDepositors = "depositors"
	KeyArticles   = "articles"
	KeyCart       = "panier_temporaire"
	KeySales      = "ventes"

	// KeyCartTouchedAt holds the instant of the last cart write, so the
	// background sweep can tell a stale cart from one mid-checkout.
	KeyCartTouchedAt = "panier_temporaire_updated_at"
)

// Clock abstracts wall-clock access so ticket numbers and sale timestamps are
// deterministic under test.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }
