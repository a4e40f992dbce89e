// internal/core/services/stats.go
package services

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/tagit-app/tagit-be/internal/core/domain"
	"github.com/tagit-app/tagit-be/internal/core/ports"
)

// SaleLedgerService exposes the append-only sales ledger.
type SaleLedgerService struct {
	sales  ports.SaleRepository
	logger *slog.Logger
}

var _ ports.SaleLedgerService = (*SaleLedgerService)(nil)

// NewSaleLedgerService creates a new ledger reader.
func NewSaleLedgerService(sales ports.SaleRepository, logger *slog.Logger) *SaleLedgerService {
	return &SaleLedgerService{
		sales:  sales,
		logger: logger.With(slog.String("service", "sales")),
	}
}

// List returns every recorded sale in chronological append order.
func (s *SaleLedgerService) List(ctx context.Context) ([]domain.Sale, error) {
	return s.sales.List(ctx)
}

// StatsService derives the dashboard snapshot from the live collections.
type StatsService struct {
	depositors ports.DepositorRepository
	articles   ports.ArticleRepository
	sales      ports.SaleRepository
	logger     *slog.Logger
}

var _ ports.StatsService = (*StatsService)(nil)

// NewStatsService creates a new dashboard stats service.
func NewStatsService(depositors ports.DepositorRepository, articles ports.ArticleRepository, sales ports.SaleRepository, logger *slog.Logger) *StatsService {
	return &StatsService{
		depositors: depositors,
		articles:   articles,
		sales:      sales,
		logger:     logger.With(slog.String("service", "stats")),
	}
}

// Stats counts depositors, articles and sold articles, and sums the revenue
// recorded on the ledger.
func (s *StatsService) Stats(ctx context.Context) (*ports.DashboardStats, error) {
	depositors, err := s.depositors.List(ctx)
	if err != nil {
		return nil, err
	}
	articles, err := s.articles.List(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.sales.List(ctx)
	if err != nil {
		return nil, err
	}

	sold := 0
	for _, article := range articles {
		if article.Sold {
			sold++
		}
	}

	revenue := decimal.Zero
	for _, sale := range sales {
		revenue = revenue.Add(sale.Total)
	}

	return &ports.DashboardStats{
		Depositors: len(depositors),
		Articles:   len(articles),
		Sold:       sold,
		Sales:      len(sales),
		Revenue:    revenue,
	}, nil
}
