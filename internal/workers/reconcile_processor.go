// internal/workers/reconcile_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/tagit-app/tagit-be/internal/core/ports"
)

const (
	TypeReconcileSold = "reconcile:sold"
	TypeCartCleanup   = "cleanup:cart"
)

// ReconcileProcessor re-derives article sold status from the sales ledger.
// Checkout writes the ledger before the catalog, so after a mid-checkout
// failure the ledger may reference articles still marked available. The
// ledger wins: every article code appearing on any sale is marked sold.
type ReconcileProcessor struct {
	sales    ports.SaleRepository
	articles ports.ArticleService
	logger   *slog.Logger
}

// NewReconcileProcessor creates a new reconciliation processor.
func NewReconcileProcessor(sales ports.SaleRepository, articles ports.ArticleService, logger *slog.Logger) *ReconcileProcessor {
	return &ReconcileProcessor{
		sales:    sales,
		articles: articles,
		logger:   logger.With(slog.String("processor", "reconcile")),
	}
}

// ReconcileSold replays the ledger against the catalog. MarkSold is
// idempotent, so replaying already-consistent sales changes nothing.
func (p *ReconcileProcessor) ReconcileSold(ctx context.Context, t *asynq.Task) error {
	sales, err := p.sales.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load sales ledger: %w", err)
	}

	seen := make(map[string]bool)
	var codes []string
	for _, sale := range sales {
		for _, item := range sale.Items {
			if !seen[item.Article.Code] {
				seen[item.Article.Code] = true
				codes = append(codes, item.Article.Code)
			}
		}
	}

	if len(codes) == 0 {
		p.logger.InfoContext(ctx, "ledger empty, nothing to reconcile")
		return nil
	}

	updated, err := p.articles.MarkSold(ctx, codes)
	if err != nil {
		return fmt.Errorf("failed to reconcile sold status: %w", err)
	}

	p.logger.InfoContext(ctx, "sold status reconciled from ledger",
		slog.Int("ledger_codes", len(codes)),
		slog.Int("articles_updated", len(updated)))

	return nil
}
