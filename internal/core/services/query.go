// internal/core/services/query.go
package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tagit-app/tagit-be/internal/core/domain"
	"github.com/tagit-app/tagit-be/internal/core/ports"
)

// QueryService filters the article catalog in memory. All filters are
// conjunctive and the stored order is preserved.
type QueryService struct {
	articles ports.ArticleRepository
	logger   *slog.Logger
}

// Statically assert that *QueryService implements the port.
var _ ports.QueryService = (*QueryService)(nil)

// NewQueryService creates a new catalog query engine.
func NewQueryService(articles ports.ArticleRepository, logger *slog.Logger) *QueryService {
	return &QueryService{
		articles: articles,
		logger:   logger.With(slog.String("service", "query")),
	}
}

// Search loads the full catalog and applies the requested filters.
func (s *QueryService) Search(ctx context.Context, params ports.SearchParams) ([]domain.Article, error) {
	all, err := s.articles.List(ctx)
	if err != nil {
		return nil, err
	}

	priceMin, hasMin := parsePriceBound(params.PriceMin)
	priceMax, hasMax := parsePriceBound(params.PriceMax)
	query := strings.ToLower(strings.TrimSpace(params.Query))

	matched := make([]domain.Article, 0, len(all))
	for _, article := range all {
		if query != "" && !matchesQuery(article, query) {
			continue
		}
		if params.Size != "" && article.Size != params.Size {
			continue
		}
		if params.Sex != "" && article.Sex != params.Sex {
			continue
		}
		if hasMin && article.Price.LessThan(priceMin) {
			continue
		}
		if hasMax && article.Price.GreaterThan(priceMax) {
			continue
		}
		switch params.Sold {
		case ports.SoldOnly:
			if !article.Sold {
				continue
			}
		case ports.SoldAvailable:
			if article.Sold {
				continue
			}
		}
		matched = append(matched, article)
	}

	s.logger.DebugContext(ctx, "catalog search",
		slog.Int("total", len(all)),
		slog.Int("matched", len(matched)))

	return matched, nil
}

// matchesQuery checks a case-insensitive substring match across the article
// code, its depositor's code and name, the size and the sex.
func matchesQuery(a domain.Article, query string) bool {
	for _, field := range []string{a.Code, a.DepositorCode, a.DepositorName, a.Size, a.Sex} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// parsePriceBound reads a textual price bound. Unparseable bounds are
// ignored rather than rejected.
func parsePriceBound(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, false
	}
	bound, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return bound, true
}
