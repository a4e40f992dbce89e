// internal/adapters/collections/cart_repository.go
package collections

import (
	"context"
	"log/slog"
	"time"

	"github.com/tagit-app/tagit-be/internal/core/domain"
	"github.com/tagit-app/tagit-be/internal/core/ports"
)

// CartRepository persists the ephemeral flat cart under "panier_temporaire".
type CartRepository struct {
	store  ports.KeyValueStore
	logger *slog.Logger
}

// Statically assert that *CartRepository implements the port.
var _ ports.CartRepository = (*CartRepository)(nil)

// NewCartRepository creates a cart repository.
func NewCartRepository(store ports.KeyValueStore, logger *slog.Logger) *CartRepository {
	return &CartRepository{
		store:  store,
		logger: logger.With(slog.String("repository", "cart")),
	}
}

// LoadFlat returns the flat cart entries in scan order.
func (r *CartRepository) LoadFlat(ctx context.Context) ([]domain.Article, error) {
	return loadAll[domain.Article](ctx, r.store, ports.KeyCart)
}

// SaveFlat overwrites the flat cart and stamps the write instant alongside it.
func (r *CartRepository) SaveFlat(ctx context.Context, flat []domain.Article) error {
	if err := saveAll(ctx, r.store, ports.KeyCart, flat); err != nil {
		return err
	}
	return r.store.Set(ctx, ports.KeyCartTouchedAt, time.Now().UTC().Format(time.RFC3339))
}

// TouchedAt returns the instant of the last SaveFlat. A cart written before
// the marker existed reads as the zero time.
func (r *CartRepository) TouchedAt(ctx context.Context) (time.Time, error) {
	value, found, err := r.store.Get(ctx, ports.KeyCartTouchedAt)
	if err != nil {
		return time.Time{}, err
	}
	if !found || value == "" {
		return time.Time{}, nil
	}
	at, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, &domain.StoreError{Op: "decode", Key: ports.KeyCartTouchedAt, Err: err}
	}
	return at, nil
}

// Clear removes the cart key and its write marker.
func (r *CartRepository) Clear(ctx context.Context) error {
	if err := r.store.Remove(ctx, ports.KeyCart); err != nil {
		return err
	}
	return r.store.Remove(ctx, ports.KeyCartTouchedAt)
}
