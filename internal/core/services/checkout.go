// internal/core/services/checkout.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tagit-app/tagit-be/internal/core/domain"
	"github.com/tagit-app/tagit-be/internal/core/ports"
)

// CheckoutService finalizes a non-empty cart into a sale. The store offers no
// cross-collection transaction, so the protocol is a fixed-order sequence:
// ledger append, then article status, then cart clear. The order biases a
// mid-sequence failure toward "sale recorded" over "cart silently lost"; the
// ledger is the durable source of truth for revenue and a background
// reconciliation pass re-derives sold status from it.
type CheckoutService struct {
	cart     ports.CartRepository
	articles ports.ArticleService
	sales    ports.SaleRepository
	tasks    ports.TaskEnqueuer
	clock    ports.Clock
	logger   *slog.Logger
}

// Statically assert that *CheckoutService implements the port.
var _ ports.CheckoutService = (*CheckoutService)(nil)

// NewCheckoutService creates a new checkout orchestrator. tasks may be nil
// when no background worker is deployed.
func NewCheckoutService(cart ports.CartRepository, articles ports.ArticleService, sales ports.SaleRepository, tasks ports.TaskEnqueuer, clock ports.Clock, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		cart:     cart,
		articles: articles,
		sales:    sales,
		tasks:    tasks,
		clock:    clock,
		logger:   logger.With(slog.String("service", "checkout")),
	}
}

// Checkout finalizes the current cart. An empty cart fails with ErrEmptyCart
// before any write. Steps after the ledger append are not rolled back on
// failure; the partial state is surfaced to the caller and queued for
// reconciliation.
func (s *CheckoutService) Checkout(ctx context.Context) (*domain.Sale, error) {
	flat, err := s.cart.LoadFlat(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(flat) == 0 {
		return nil, domain.ErrEmptyCart
	}

	sale := domain.NewSale(domain.GroupCart(flat), s.clock.Now())

	// Step 1: append to the ledger. A failure here aborts with nothing written.
	if err := s.sales.Append(ctx, sale); err != nil {
		return nil, fmt.Errorf("failed to record sale: %w", err)
	}

	// Step 2: mark articles sold. The sale is already durable; on failure the
	// inconsistency is surfaced and left for reconciliation.
	codes := make([]string, 0, len(sale.Items))
	for _, it := range sale.Items {
		codes = append(codes, it.Article.Code)
	}
	if _, err := s.articles.MarkSold(ctx, codes); err != nil {
		s.logger.ErrorContext(ctx, "sale recorded but articles not marked sold",
			slog.String("ticket", sale.TicketNumber),
			slog.String("error", err.Error()))
		s.requestReconcile(ctx)
		return nil, fmt.Errorf("sale %s recorded but sold status not persisted: %w", sale.TicketNumber, err)
	}

	// Step 3: clear the cart. Sale and sold status are already persisted, so
	// a failure here only leaves a stale cart behind.
	if err := s.cart.Clear(ctx); err != nil {
		s.logger.ErrorContext(ctx, "sale recorded but cart not cleared",
			slog.String("ticket", sale.TicketNumber),
			slog.String("error", err.Error()))
		s.requestCartCleanup(ctx)
		return nil, fmt.Errorf("sale %s recorded but cart not cleared: %w", sale.TicketNumber, err)
	}

	s.logger.InfoContext(ctx, "checkout completed",
		slog.String("ticket", sale.TicketNumber),
		slog.String("total", sale.Total.String()),
		slog.Int("items", len(sale.Items)))

	return &sale, nil
}

func (s *CheckoutService) requestReconcile(ctx context.Context) {
	if s.tasks == nil {
		return
	}
	if err := s.tasks.EnqueueReconcileSold(ctx); err != nil {
		s.logger.WarnContext(ctx, "failed to enqueue reconciliation",
			slog.String("error", err.Error()))
	}
}

func (s *CheckoutService) requestCartCleanup(ctx context.Context) {
	if s.tasks == nil {
		return
	}
	if err := s.tasks.EnqueueCartCleanup(ctx); err != nil {
		s.logger.WarnContext(ctx, "failed to enqueue cart cleanup",
			slog.String("error", err.Error()))
	}
}
