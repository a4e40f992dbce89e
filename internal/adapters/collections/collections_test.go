package collections_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tagit-app/tagit-be/internal/adapters/collections"
	"github.com/tagit-app/tagit-be/internal/core/domain"
	"github.com/tagit-app/tagit-be/internal/core/ports"
	"github.com/tagit-app/tagit-be/test/helpers"
	"github.com/tagit-app/tagit-be/test/mocks"
)

func TestDepositorRepository_AppendFindReplace(t *testing.T) {
	ctx := context.Background()
	store := helpers.NewMemoryStore()
	repo := collections.NewDepositorRepository(store, helpers.TestLogger())

	d := helpers.TestDepositor()
	require.NoError(t, repo.Append(ctx, d))

	byCode, err := repo.FindByCode(ctx, "MAD3")
	require.NoError(t, err)
	assert.Equal(t, d.ID, byCode.ID)

	byID, err := repo.FindByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "MAD3", byID.Code)

	byID.Phone = "0707070707"
	require.NoError(t, repo.Replace(ctx, *byID))

	reloaded, err := repo.FindByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "0707070707", reloaded.Phone)
}

func TestDepositorRepository_EmptyCollection(t *testing.T) {
	ctx := context.Background()
	repo := collections.NewDepositorRepository(helpers.NewMemoryStore(), helpers.TestLogger())

	depositors, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, depositors)

	_, err = repo.FindByCode(ctx, "MAD3")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDepositorRepository_DeleteLeavesArticlesUntouched(t *testing.T) {
	ctx := context.Background()
	store := helpers.NewMemoryStore()
	depositors := collections.NewDepositorRepository(store, helpers.TestLogger())
	articles := collections.NewArticleRepository(store, helpers.TestLogger())

	d := helpers.TestDepositor()
	require.NoError(t, depositors.Append(ctx, d))
	require.NoError(t, articles.Append(ctx, helpers.TestArticle()))

	require.NoError(t, depositors.Delete(ctx, d.ID))
	assert.ErrorIs(t, depositors.Delete(ctx, d.ID), domain.ErrNotFound)

	// The orphaned article is still retrievable with its denormalized snapshot.
	orphan, err := articles.FindByCode(ctx, "MAD3-001")
	require.NoError(t, err)
	assert.Equal(t, "MAD3", orphan.DepositorCode)
	assert.Equal(t, "Marie Dupont", orphan.DepositorName)
}

func TestArticleRepository_CountByDepositorCode(t *testing.T) {
	ctx := context.Background()
	repo := collections.NewArticleRepository(helpers.NewMemoryStore(), helpers.TestLogger())

	require.NoError(t, repo.Append(ctx, helpers.TestArticle()))
	require.NoError(t, repo.Append(ctx, helpers.TestArticle(func(a *domain.Article) {
		a.ID = "art-2"
		a.Code = "MAD3-002"
	})))
	require.NoError(t, repo.Append(ctx, helpers.TestArticle(func(a *domain.Article) {
		a.ID = "art-3"
		a.Code = "XYZ1-001"
		a.DepositorCode = "XYZ1"
	})))

	count, err := repo.CountByDepositorCode(ctx, "MAD3")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestArticleRepository_ReplaceAllPreservesOrder(t *testing.T) {
	ctx := context.Background()
	repo := collections.NewArticleRepository(helpers.NewMemoryStore(), helpers.TestLogger())

	articles := []domain.Article{
		helpers.TestArticle(func(a *domain.Article) { a.ID = "a"; a.Code = "MAD3-001" }),
		helpers.TestArticle(func(a *domain.Article) { a.ID = "b"; a.Code = "MAD3-002" }),
		helpers.TestArticle(func(a *domain.Article) { a.ID = "c"; a.Code = "MAD3-003" }),
	}
	require.NoError(t, repo.ReplaceAll(ctx, articles))

	stored, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, "MAD3-001", stored[0].Code)
	assert.Equal(t, "MAD3-002", stored[1].Code)
	assert.Equal(t, "MAD3-003", stored[2].Code)
}

func TestCartRepository_FlatRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := helpers.NewMemoryStore()
	repo := collections.NewCartRepository(store, helpers.TestLogger())

	flat := []domain.Article{
		helpers.TestArticle(),
		helpers.TestArticle(),
		helpers.TestArticle(func(a *domain.Article) { a.ID = "art-2"; a.Code = "MAD3-002" }),
	}
	require.NoError(t, repo.SaveFlat(ctx, flat))

	touchedAt, err := repo.TouchedAt(ctx)
	require.NoError(t, err)
	assert.False(t, touchedAt.IsZero())

	loaded, err := repo.LoadFlat(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, "MAD3-001", loaded[0].Code)
	assert.Equal(t, "MAD3-001", loaded[1].Code)
	assert.Equal(t, "MAD3-002", loaded[2].Code)

	require.NoError(t, repo.Clear(ctx))
	_, found := store.Raw(ports.KeyCart)
	assert.False(t, found)
	_, found = store.Raw(ports.KeyCartTouchedAt)
	assert.False(t, found)

	// Clearing drops the marker too, so the next write starts a fresh age.
	touchedAt, err = repo.TouchedAt(ctx)
	require.NoError(t, err)
	assert.True(t, touchedAt.IsZero())
}

func TestSaleRepository_AppendKeepsLedgerOrder(t *testing.T) {
	ctx := context.Background()
	repo := collections.NewSaleRepository(helpers.NewMemoryStore(), helpers.TestLogger())

	first := domain.Sale{ID: "s1", TicketNumber: "T20250901100000"}
	second := domain.Sale{ID: "s2", TicketNumber: "T20250901100001"}
	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, second))

	sales, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, "s1", sales[0].ID)
	assert.Equal(t, "s2", sales[1].ID)
}

func TestRepositories_CorruptBlobSurfacesStoreError(t *testing.T) {
	ctx := context.Background()
	store := helpers.NewMemoryStore()
	store.SeedRaw(ports.KeyArticles, "{not json")

	repo := collections.NewArticleRepository(store, helpers.TestLogger())
	_, err := repo.List(ctx)

	var storeErr *domain.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "decode", storeErr.Op)
}

func TestDepositorRepository_AppendIsSingleReadModifyWrite(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockKeyValueStore(ctrl)

	var written string
	store.EXPECT().Get(gomock.Any(), ports.KeyDepositors).Return("", false, nil)
	store.EXPECT().Set(gomock.Any(), ports.KeyDepositors, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value string) error {
			written = value
			return nil
		})

	repo := collections.NewDepositorRepository(store, helpers.TestLogger())
	require.NoError(t, repo.Append(ctx, helpers.TestDepositor()))

	var blob []domain.Depositor
	require.NoError(t, json.Unmarshal([]byte(written), &blob))
	require.Len(t, blob, 1)
	assert.Equal(t, "MAD3", blob[0].Code)
}

func TestArticleRepository_ListPropagatesStoreFailure(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockKeyValueStore(ctrl)

	store.EXPECT().Get(gomock.Any(), ports.KeyArticles).
		Return("", false, &domain.StoreError{Op: "get", Key: ports.KeyArticles, Err: errConnRefused})

	repo := collections.NewArticleRepository(store, helpers.TestLogger())
	_, err := repo.List(ctx)

	var storeErr *domain.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.ErrorIs(t, err, errConnRefused)
}

var errConnRefused = errors.New("connection refused")
