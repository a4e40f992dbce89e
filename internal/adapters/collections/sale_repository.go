// internal/adapters/collections/sale_repository.go
package collections

import (
	"context"
	"log/slog"

	"github.com/tagit-app/tagit-be/internal/core/domain"
	"github.com/tagit-app/tagit-be/internal/core/ports"
)

// SaleRepository persists the append-only sales ledger under "ventes".
type SaleRepository struct {
	store  ports.KeyValueStore
	logger *slog.Logger
}

// Statically assert that *SaleRepository implements the port.
var _ ports.SaleRepository = (*SaleRepository)(nil)

// NewSaleRepository creates a sale repository.
func NewSaleRepository(store ports.KeyValueStore, logger *slog.Logger) *SaleRepository {
	return &SaleRepository{
		store:  store,
		logger: logger.With(slog.String("repository", "sales")),
	}
}

// List returns the sales in ledger order, oldest first.
func (r *SaleRepository) List(ctx context.Context) ([]domain.Sale, error) {
	return loadAll[domain.Sale](ctx, r.store, ports.KeySales)
}

// Append adds a sale to the end of the ledger. Existing records are never
// rewritten.
func (r *SaleRepository) Append(ctx context.Context, s domain.Sale) error {
	sales, err := r.List(ctx)
	if err != nil {
		return err
	}
	return saveAll(ctx, r.store, ports.KeySales, append(sales, s))
}
