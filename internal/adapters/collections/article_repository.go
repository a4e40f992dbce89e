// internal/adapters/collections/article_repository.go
package collections

import (
	"context"
	"log/slog"

	"github.com/tagit-app/tagit-be/internal/core/domain"
	"github.com/tagit-app/tagit-be/internal/core/ports"
)

// ArticleRepository persists articles under the "articles" key.
type ArticleRepository struct {
	store  ports.KeyValueStore
	logger *slog.Logger
}

// Statically assert that *ArticleRepository implements the port.
var _ ports.ArticleRepository = (*ArticleRepository)(nil)

// NewArticleRepository creates an article repository.
func NewArticleRepository(store ports.KeyValueStore, logger *slog.Logger) *ArticleRepository {
	return &ArticleRepository{
		store:  store,
		logger: logger.With(slog.String("repository", "articles")),
	}
}

// List returns the articles in stored order.
func (r *ArticleRepository) List(ctx context.Context) ([]domain.Article, error) {
	return loadAll[domain.Article](ctx, r.store, ports.KeyArticles)
}

// FindByID returns the article with the given id, or ErrNotFound.
func (r *ArticleRepository) FindByID(ctx context.Context, id string) (*domain.Article, error) {
	articles, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range articles {
		if articles[i].ID == id {
			return &articles[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// FindByCode returns the article with the given code, or ErrNotFound.
func (r *ArticleRepository) FindByCode(ctx context.Context, code string) (*domain.Article, error) {
	articles, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range articles {
		if articles[i].Code == code {
			return &articles[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// CountByDepositorCode counts the articles referencing a depositor code,
// including orphans whose depositor was removed.
func (r *ArticleRepository) CountByDepositorCode(ctx context.Context, depositorCode string) (int, error) {
	articles, err := r.List(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for i := range articles {
		if articles[i].DepositorCode == depositorCode {
			count++
		}
	}
	return count, nil
}

// Append adds an article to the collection.
func (r *ArticleRepository) Append(ctx context.Context, a domain.Article) error {
	articles, err := r.List(ctx)
	if err != nil {
		return err
	}
	return saveAll(ctx, r.store, ports.KeyArticles, append(articles, a))
}

// Replace overwrites the stored article with the same id, or returns
// ErrNotFound.
func (r *ArticleRepository) Replace(ctx context.Context, a domain.Article) error {
	articles, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i := range articles {
		if articles[i].ID == a.ID {
			articles[i] = a
			return saveAll(ctx, r.store, ports.KeyArticles, articles)
		}
	}
	return domain.ErrNotFound
}

// ReplaceAll overwrites the whole collection in one write. Used by bulk status
// transitions which must land as a single blob update.
func (r *ArticleRepository) ReplaceAll(ctx context.Context, articles []domain.Article) error {
	return saveAll(ctx, r.store, ports.KeyArticles, articles)
}

// Delete removes the article with the given id, or returns ErrNotFound.
func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	articles, err := r.List(ctx)
	if err != nil {
		return err
	}
	kept := articles[:0]
	for _, a := range articles {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(articles) {
		return domain.ErrNotFound
	}
	return saveAll(ctx, r.store, ports.KeyArticles, kept)
}
