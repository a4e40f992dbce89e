// internal/core/services/article_service_test.go
package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagit-app/tagit-be/internal/adapters/collections"
	"github.com/tagit-app/tagit-be/internal/core/domain"
	"github.com/tagit-app/tagit-be/internal/core/ports"
	"github.com/tagit-app/tagit-be/internal/core/services"
	"github.com/tagit-app/tagit-be/test/helpers"
)

func newArticleFixture(t *testing.T) (*services.ArticleService, *collections.ArticleRepository, *collections.DepositorRepository) {
	t.Helper()
	store := helpers.NewMemoryStore()
	logger := helpers.TestLogger()
	articles := collections.NewArticleRepository(store, logger)
	depositors := collections.NewDepositorRepository(store, logger)
	clock := helpers.FixedClock(time.Date(2025, 9, 1, 11, 0, 0, 0, time.UTC))
	svc := services.NewArticleService(articles, depositors, clock, logger)
	return svc, articles, depositors
}

func TestArticleService_Create(t *testing.T) {
	svc, _, depositors := newArticleFixture(t)
	ctx := context.Background()

	require.NoError(t, depositors.Append(ctx, helpers.TestDepositor()))

	attrs := ports.NewArticle{
		DepositorCode: "MAD3",
		Size:          "M",
		Sex:           "F",
		Price:         decimal.NewFromInt(12),
	}

	first, err := svc.Create(ctx, attrs)
	require.NoError(t, err)
	assert.Equal(t, "MAD3-001", first.Code)
	assert.Equal(t, "Marie Dupont", first.DepositorName)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.Sold)

	second, err := svc.Create(ctx, attrs)
	require.NoError(t, err)
	assert.Equal(t, "MAD3-002", second.Code)
}

func TestArticleService_Create_NeverReusesCodeAfterRemove(t *testing.T) {
	svc, _, depositors := newArticleFixture(t)
	ctx := context.Background()

	require.NoError(t, depositors.Append(ctx, helpers.TestDepositor()))

	attrs := ports.NewArticle{
		DepositorCode: "MAD3",
		Size:          "M",
		Sex:           "F",
		Price:         decimal.NewFromInt(12),
	}

	first, err := svc.Create(ctx, attrs)
	require.NoError(t, err)
	second, err := svc.Create(ctx, attrs)
	require.NoError(t, err)
	require.Equal(t, "MAD3-002", second.Code)

	// Removing the first article must not free its sequence number. A reused
	// code would collide with the live second article.
	require.NoError(t, svc.Remove(ctx, first.ID))

	third, err := svc.Create(ctx, attrs)
	require.NoError(t, err)
	assert.Equal(t, "MAD3-003", third.Code)
	assert.NotEqual(t, second.Code, third.Code)
}

func TestArticleService_Create_Errors(t *testing.T) {
	tests := []struct {
		name          string
		attrs         ports.NewArticle
		errorIs       error
		errorContains string
	}{
		{
			name: "unknown_depositor",
			attrs: ports.NewArticle{
				DepositorCode: "ZZZ9",
				Size:          "M",
				Sex:           "F",
				Price:         decimal.NewFromInt(12),
			},
			errorIs: domain.ErrNotFound,
		},
		{
			name: "missing_size",
			attrs: ports.NewArticle{
				DepositorCode: "MAD3",
				Sex:           "F",
				Price:         decimal.NewFromInt(12),
			},
			errorContains: "size",
		},
		{
			name: "negative_price",
			attrs: ports.NewArticle{
				DepositorCode: "MAD3",
				Size:          "M",
				Sex:           "F",
				Price:         decimal.NewFromInt(-5),
			},
			errorContains: "price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, depositors := newArticleFixture(t)
			ctx := context.Background()
			require.NoError(t, depositors.Append(ctx, helpers.TestDepositor()))

			_, err := svc.Create(ctx, tt.attrs)
			require.Error(t, err)
			if tt.errorIs != nil {
				assert.ErrorIs(t, err, tt.errorIs)
			}
			if tt.errorContains != "" {
				assert.Contains(t, err.Error(), tt.errorContains)
			}
		})
	}
}

func TestArticleService_Update_PriceFrozenOnceSold(t *testing.T) {
	svc, articles, _ := newArticleFixture(t)
	ctx := context.Background()

	sold := helpers.TestArticle(func(a *domain.Article) {
		a.Sold = true
		at := time.Date(2025, 9, 1, 14, 0, 0, 0, time.UTC)
		a.SoldAt = &at
	})
	require.NoError(t, articles.Append(ctx, sold))

	newPrice := decimal.NewFromInt(20)
	_, err := svc.Update(ctx, sold.ID, domain.ArticlePatch{Price: &newPrice})
	require.Error(t, err)

	var immutable *domain.ImmutableFieldError
	require.ErrorAs(t, err, &immutable)
	assert.Equal(t, "price", immutable.Field)

	// Metadata stays editable after the sale.
	newLocation := "rack B"
	updated, err := svc.Update(ctx, sold.ID, domain.ArticlePatch{Location: &newLocation})
	require.NoError(t, err)
	assert.Equal(t, newLocation, updated.Location)
	assert.True(t, updated.Price.Equal(sold.Price))
}

func TestArticleService_Update_PriceOnAvailableArticle(t *testing.T) {
	svc, articles, _ := newArticleFixture(t)
	ctx := context.Background()

	seed := helpers.TestArticle()
	require.NoError(t, articles.Append(ctx, seed))

	newPrice := decimal.NewFromInt(15)
	updated, err := svc.Update(ctx, seed.ID, domain.ArticlePatch{Price: &newPrice})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(newPrice))
}

func TestArticleService_MarkSold(t *testing.T) {
	svc, articles, _ := newArticleFixture(t)
	ctx := context.Background()

	require.NoError(t, articles.Append(ctx, helpers.TestArticle()))
	require.NoError(t, articles.Append(ctx, helpers.TestArticle(func(a *domain.Article) {
		a.ID = "art-2"
		a.Code = "MAD3-002"
	})))
	require.NoError(t, articles.Append(ctx, helpers.TestArticle(func(a *domain.Article) {
		a.ID = "art-3"
		a.Code = "MAD3-003"
	})))

	updated, err := svc.MarkSold(ctx, []string{"MAD3-001", "MAD3-003", "GONE-999"})
	require.NoError(t, err)
	require.Len(t, updated, 2, "codes matching nothing are skipped")

	all, err := articles.List(ctx)
	require.NoError(t, err)
	assert.True(t, all[0].Sold)
	assert.False(t, all[1].Sold)
	assert.True(t, all[2].Sold)
	require.NotNil(t, all[0].SoldAt)
	firstSoldAt := *all[0].SoldAt

	// Re-marking keeps the original sale time.
	_, err = svc.MarkSold(ctx, []string{"MAD3-001"})
	require.NoError(t, err)
	again, err := articles.FindByCode(ctx, "MAD3-001")
	require.NoError(t, err)
	require.NotNil(t, again.SoldAt)
	assert.Equal(t, firstSoldAt, *again.SoldAt)
}

func TestArticleService_MarkSold_EmptyCodes(t *testing.T) {
	svc, _, _ := newArticleFixture(t)

	updated, err := svc.MarkSold(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, updated)
}
