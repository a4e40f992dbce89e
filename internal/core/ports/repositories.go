// internal/core/ports/repositories.go
package ports

import (
	"context"
	"time"

	"github.com/tagit-app/tagit-be/internal/core/domain"
)

// DepositorRepository persists the depositor collection. Implementations
// read-modify-write the whole collection blob; there is no row-level access.
type DepositorRepository interface {
	List(ctx context.Context) ([]domain.Depositor, error)
	FindByID(ctx context.Context, id string) (*domain.Depositor, error)
	FindByCode(ctx context.Context, code string) (*domain.Depositor, error)
	Append(ctx context.Context, d domain.Depositor) error
	Replace(ctx context.Context, d domain.Depositor) error
	Delete(ctx context.Context, id string) error
}

// ArticleRepository persists the article collection.
type ArticleRepository interface {
	List(ctx context.Context) ([]domain.Article, error)
	FindByID(ctx context.Context, id string) (*domain.Article, error)
	FindByCode(ctx context.Context, code string) (*domain.Article, error)
	CountByDepositorCode(ctx context.Context, depositorCode string) (int, error)
	Append(ctx context.Context, a domain.Article) error
	Replace(ctx context.Context, a domain.Article) error
	ReplaceAll(ctx context.Context, articles []domain.Article) error
	Delete(ctx context.Context, id string) error
}

// CartRepository persists the ephemeral flat cart: one article snapshot per
// scanned unit, duplicates allowed.
type CartRepository interface {
	LoadFlat(ctx context.Context) ([]domain.Article, error)
	SaveFlat(ctx context.Context, flat []domain.Article) error
	// TouchedAt returns the instant of the last SaveFlat, or the zero time
	// when the cart was never written or predates the marker.
	TouchedAt(ctx context.Context) (time.Time, error)
	Clear(ctx context.Context) error
}

// SaleRepository persists the append-only sales ledger.
type SaleRepository interface {
	List(ctx context.Context) ([]domain.Sale, error)
	Append(ctx context.Context, s domain.Sale) error
}
