// internal/workers/reconcile_processor_test.go
package workers_test

import (
	"context"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagit-app/tagit-be/internal/adapters/collections"
	"github.com/tagit-app/tagit-be/internal/core/domain"
	"github.com/tagit-app/tagit-be/internal/core/ports"
	"github.com/tagit-app/tagit-be/internal/core/services"
	"github.com/tagit-app/tagit-be/internal/workers"
	"github.com/tagit-app/tagit-be/test/helpers"
)

func TestReconcileProcessor_ReconcileSold(t *testing.T) {
	store := helpers.NewMemoryStore()
	logger := helpers.TestLogger()
	at := time.Date(2025, 9, 1, 16, 0, 0, 0, time.UTC)
	clock := helpers.FixedClock(at)

	articles := collections.NewArticleRepository(store, logger)
	depositors := collections.NewDepositorRepository(store, logger)
	sales := collections.NewSaleRepository(store, logger)
	articleSvc := services.NewArticleService(articles, depositors, clock, logger)
	processor := workers.NewReconcileProcessor(sales, articleSvc, logger)
	ctx := context.Background()

	// One article on the ledger but still available in the catalog, one
	// already consistent, one untouched by any sale.
	ledgered := helpers.TestArticle()
	consistent := helpers.TestArticle(func(a *domain.Article) {
		a.ID = "art-2"
		a.Code = "MAD3-002"
		a.Sold = true
		a.SoldAt = &at
	})
	untouched := helpers.TestArticle(func(a *domain.Article) {
		a.ID = "art-3"
		a.Code = "MAD3-003"
	})
	require.NoError(t, articles.Append(ctx, ledgered))
	require.NoError(t, articles.Append(ctx, consistent))
	require.NoError(t, articles.Append(ctx, untouched))

	sale := domain.NewSale([]domain.CartItem{
		{Article: ledgered, Quantity: 1},
		{Article: consistent, Quantity: 1},
	}, at)
	require.NoError(t, sales.Append(ctx, sale))

	task := asynq.NewTask(workers.TypeReconcileSold, nil)
	require.NoError(t, processor.ReconcileSold(ctx, task))

	got, err := articles.FindByCode(ctx, ledgered.Code)
	require.NoError(t, err)
	assert.True(t, got.Sold, "ledgered article should be marked sold")

	still, err := articles.FindByCode(ctx, untouched.Code)
	require.NoError(t, err)
	assert.False(t, still.Sold)

	kept, err := articles.FindByCode(ctx, consistent.Code)
	require.NoError(t, err)
	require.NotNil(t, kept.SoldAt)
	assert.Equal(t, at, *kept.SoldAt, "already-sold article keeps its sale time")
}

func TestReconcileProcessor_EmptyLedger(t *testing.T) {
	store := helpers.NewMemoryStore()
	logger := helpers.TestLogger()
	clock := helpers.FixedClock(time.Date(2025, 9, 1, 16, 0, 0, 0, time.UTC))

	articles := collections.NewArticleRepository(store, logger)
	depositors := collections.NewDepositorRepository(store, logger)
	sales := collections.NewSaleRepository(store, logger)
	articleSvc := services.NewArticleService(articles, depositors, clock, logger)
	processor := workers.NewReconcileProcessor(sales, articleSvc, logger)

	task := asynq.NewTask(workers.TypeReconcileSold, nil)
	assert.NoError(t, processor.ReconcileSold(context.Background(), task))
}

func TestCleanupProcessor_SweepsCartIdleBeyondMaxAge(t *testing.T) {
	store := helpers.NewMemoryStore()
	logger := helpers.TestLogger()
	cart := collections.NewCartRepository(store, logger)
	ctx := context.Background()

	require.NoError(t, cart.SaveFlat(ctx, []domain.Article{helpers.TestArticle()}))

	// The sweep runs two hours after the last cart write.
	clock := helpers.FixedClock(time.Now().Add(2 * time.Hour))
	processor := workers.NewCleanupProcessor(cart, time.Hour, clock, logger)

	task := asynq.NewTask(workers.TypeCartCleanup, nil)
	require.NoError(t, processor.CleanupCart(ctx, task))

	flat, err := cart.LoadFlat(ctx)
	require.NoError(t, err)
	assert.Empty(t, flat)

	touchedAt, err := cart.TouchedAt(ctx)
	require.NoError(t, err)
	assert.True(t, touchedAt.IsZero())

	// An already-empty cart is a no-op.
	assert.NoError(t, processor.CleanupCart(ctx, task))
}

func TestCleanupProcessor_LeavesFreshCartAlone(t *testing.T) {
	store := helpers.NewMemoryStore()
	logger := helpers.TestLogger()
	cart := collections.NewCartRepository(store, logger)
	ctx := context.Background()

	require.NoError(t, cart.SaveFlat(ctx, []domain.Article{helpers.TestArticle()}))

	// The sweep fires right after the write, well inside the idle threshold.
	clock := helpers.FixedClock(time.Now())
	processor := workers.NewCleanupProcessor(cart, time.Hour, clock, logger)

	task := asynq.NewTask(workers.TypeCartCleanup, nil)
	require.NoError(t, processor.CleanupCart(ctx, task))

	flat, err := cart.LoadFlat(ctx)
	require.NoError(t, err)
	assert.Len(t, flat, 1)
}

func TestCleanupProcessor_CartWithoutMarkerIsStale(t *testing.T) {
	store := helpers.NewMemoryStore()
	logger := helpers.TestLogger()
	cart := collections.NewCartRepository(store, logger)
	ctx := context.Background()

	// A cart written before the marker existed has no write instant.
	require.NoError(t, cart.SaveFlat(ctx, []domain.Article{helpers.TestArticle()}))
	require.NoError(t, store.Remove(ctx, ports.KeyCartTouchedAt))

	clock := helpers.FixedClock(time.Now())
	processor := workers.NewCleanupProcessor(cart, time.Hour, clock, logger)

	task := asynq.NewTask(workers.TypeCartCleanup, nil)
	require.NoError(t, processor.CleanupCart(ctx, task))

	flat, err := cart.LoadFlat(ctx)
	require.NoError(t, err)
	assert.Empty(t, flat)
}
