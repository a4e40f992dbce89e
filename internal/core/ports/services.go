// internal/core/ports/services.go
package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tagit-app/tagit-be/internal/core/domain"
)

// DepositorService is the application service port for the depositor directory.
type DepositorService interface {
	Create(ctx context.Context, firstName, lastName, phone string) (*domain.Depositor, error)
	Update(ctx context.Context, id string, patch domain.DepositorPatch) (*domain.Depositor, error)
	Remove(ctx context.Context, id string) error
	CheckIn(ctx context.Context, code string) (*domain.Depositor, error)
	List(ctx context.Context) ([]domain.Depositor, error)
	GetByCode(ctx context.Context, code string) (*domain.Depositor, error)
	// CountArticles derives the live article count from the catalog; the stored
	// ArticleCount field is a stale snapshot.
	CountArticles(ctx context.Context, code string) (int, error)
}

// NewArticle carries the caller-supplied attributes of an article to create.
type NewArticle struct {
	DepositorCode string
	PhotoRef      string
	Size          string
	Sex           string
	Price         decimal.Decimal
	Location      string
}

// ArticleService is the application service port for the article catalog.
type ArticleService interface {
	Create(ctx context.Context, attrs NewArticle) (*domain.Article, error)
	Update(ctx context.Context, id string, patch domain.ArticlePatch) (*domain.Article, error)
	MarkSold(ctx context.Context, codes []string) ([]domain.Article, error)
	Remove(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Article, error)
	GetByCode(ctx context.Context, code string) (*domain.Article, error)
}

// CartView is the grouped cart plus its recomputed total.
type CartView struct {
	Items []domain.CartItem `json:"items"`
	Total decimal.Decimal   `json:"total"`
}

// CartService is the application service port for the ephemeral sale cart.
type CartService interface {
	Add(ctx context.Context, article domain.Article) (*CartView, error)
	ChangeQuantity(ctx context.Context, code string, delta int) (*CartView, error)
	Remove(ctx context.Context, code string) (*CartView, error)
	Clear(ctx context.Context) error
	View(ctx context.Context) (*CartView, error)
}

// CheckoutService finalizes a non-empty cart into a sale.
type CheckoutService interface {
	Checkout(ctx context.Context) (*domain.Sale, error)
}

// ScanResult is the tagged outcome of resolving a decoded scan payload.
// Absence is a normal, displayable outcome, not an error.
type ScanResult struct {
	Kind      domain.CodeKind   `json:"kind"`
	Code      string            `json:"code"`
	Found     bool              `json:"found"`
	Depositor *domain.Depositor `json:"depositor,omitempty"`
	Article   *domain.Article   `json:"article,omitempty"`
}

// ScanService resolves decoded scan payloads against the two collections.
type ScanService interface {
	Resolve(ctx context.Context, scanned string) (*ScanResult, error)
}

// SoldFilter is the tri-state sold-status filter of the query engine.
type SoldFilter string

const (
	SoldAll       SoldFilter = "all"
	SoldOnly      SoldFilter = "sold"
	SoldAvailable SoldFilter = "available"
)

// SearchParams compose conjunctively. Price bounds are raw strings; a bound
// that does not parse as a number is ignored.
type SearchParams struct {
	Query    string
	Size     string
	Sex      string
	PriceMin string
	PriceMax string
	Sold     SoldFilter
}

// QueryService is the read-side filter/search over the article catalog.
type QueryService interface {
	Search(ctx context.Context, params SearchParams) ([]domain.Article, error)
}

// SaleLedgerService reads the append-only sales ledger.
type SaleLedgerService interface {
	List(ctx context.Context) ([]domain.Sale, error)
}

// DashboardStats is the event-overview snapshot shown on the home screen.
type DashboardStats struct {
	Depositors int             `json:"depositors"`
	Articles   int             `json:"articles"`
	Sold       int             `json:"sold"`
	Sales      int             `json:"sales"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// StatsService computes the dashboard snapshot from the collections.
type StatsService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
}
