// internal/core/services/article.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/tagit-app/tagit-be/internal/core/domain"
	"github.com/tagit-app/tagit-be/internal/core/ports"
)

// ArticleService handles article catalog business logic.
type ArticleService struct {
	articles   ports.ArticleRepository
	depositors ports.DepositorRepository
	clock      ports.Clock
	logger     *slog.Logger
}

// Statically assert that *ArticleService implements the port.
var _ ports.ArticleService = (*ArticleService)(nil)

// NewArticleService creates a new article service.
func NewArticleService(articles ports.ArticleRepository, depositors ports.DepositorRepository, clock ports.Clock, logger *slog.Logger) *ArticleService {
	return &ArticleService{
		articles:   articles,
		depositors: depositors,
		clock:      clock,
		logger:     logger.With(slog.String("service", "article")),
	}
}

// Create registers a new article for an existing depositor. The depositor's
// name is snapshotted onto the article; renaming the depositor later does not
// update it. The article code is composed from the depositor code and the next
// per-depositor sequence number.
func (s *ArticleService) Create(ctx context.Context, attrs ports.NewArticle) (*domain.Article, error) {
	depositor, err := s.depositors.FindByCode(ctx, attrs.DepositorCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve depositor %s: %w", attrs.DepositorCode, err)
	}

	a := domain.Article{
		DepositorCode: depositor.Code,
		DepositorName: depositor.FullName(),
		PhotoRef:      attrs.PhotoRef,
		Size:          attrs.Size,
		Sex:           attrs.Sex,
		Price:         attrs.Price,
		Location:      attrs.Location,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	sequence, err := s.nextSequence(ctx, depositor.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to derive article sequence: %w", err)
	}
	a.PrepareForStorage(sequence, s.clock.Now())

	if err := s.articles.Append(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to save article: %w", err)
	}

	s.logger.InfoContext(ctx, "article created",
		slog.String("code", a.Code),
		slog.String("depositor_code", a.DepositorCode))

	return &a, nil
}

// nextSequence returns one past the highest sequence ever assigned under the
// depositor's code. Counting live articles would reuse a code after a removal;
// a code must stay unique among live articles or exact-code scans and bulk
// MarkSold would hit two units at once.
func (s *ArticleService) nextSequence(ctx context.Context, depositorCode string) (int, error) {
	articles, err := s.articles.List(ctx)
	if err != nil {
		return 0, err
	}
	max := 0
	for i := range articles {
		prefix, suffix, ok := domain.SplitArticleCode(articles[i].Code)
		if !ok || prefix != depositorCode {
			continue
		}
		seq, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return max + 1, nil
}

// Update patches an article. Price and code are frozen once the article is
// sold; only metadata may still change.
func (s *ArticleService) Update(ctx context.Context, id string, patch domain.ArticlePatch) (*domain.Article, error) {
	a, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load article %s: %w", id, err)
	}

	if err := patch.Apply(a); err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	if err := s.articles.Replace(ctx, *a); err != nil {
		return nil, fmt.Errorf("failed to update article %s: %w", id, err)
	}
	return a, nil
}

// MarkSold flips every article whose code is in codes to sold, in a single
// collection write. Re-marking an already-sold article is a no-op, so the
// operation is idempotent. Codes matching nothing are skipped.
func (s *ArticleService) MarkSold(ctx context.Context, codes []string) ([]domain.Article, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	wanted := make(map[string]bool, len(codes))
	for _, code := range codes {
		wanted[code] = true
	}

	articles, err := s.articles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load articles: %w", err)
	}

	now := s.clock.Now()
	var updated []domain.Article
	for i := range articles {
		if wanted[articles[i].Code] {
			articles[i].MarkSold(now)
			updated = append(updated, articles[i])
		}
	}

	if err := s.articles.ReplaceAll(ctx, articles); err != nil {
		return nil, fmt.Errorf("failed to persist sold status: %w", err)
	}

	s.logger.InfoContext(ctx, "articles marked sold",
		slog.Int("requested", len(codes)),
		slog.Int("matched", len(updated)))

	return updated, nil
}

// Remove deletes an article from the catalog.
func (s *ArticleService) Remove(ctx context.Context, id string) error {
	if err := s.articles.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete article %s: %w", id, err)
	}
	s.logger.InfoContext(ctx, "article removed", slog.String("id", id))
	return nil
}

// List returns all articles in catalog order.
func (s *ArticleService) List(ctx context.Context) ([]domain.Article, error) {
	return s.articles.List(ctx)
}

// GetByCode returns the article with the given code.
func (s *ArticleService) GetByCode(ctx context.Context, code string) (*domain.Article, error) {
	return s.articles.FindByCode(ctx, code)
}
