// internal/core/services/depositor_service_test.go
package services_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagit-app/tagit-be/internal/adapters/collections"
	"github.com/tagit-app/tagit-be/internal/core/domain"
	"github.com/tagit-app/tagit-be/internal/core/ports"
	"github.com/tagit-app/tagit-be/internal/core/services"
	"github.com/tagit-app/tagit-be/test/helpers"
)

func newDepositorFixture(t *testing.T) (*services.DepositorService, *collections.DepositorRepository, *collections.ArticleRepository, *helpers.MemoryStore) {
	t.Helper()
	store := helpers.NewMemoryStore()
	logger := helpers.TestLogger()
	depositors := collections.NewDepositorRepository(store, logger)
	articles := collections.NewArticleRepository(store, logger)
	clock := helpers.FixedClock(time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC))
	svc := services.NewDepositorService(depositors, articles, clock, logger)
	return svc, depositors, articles, store
}

func TestDepositorService_Create(t *testing.T) {
	tests := []struct {
		name          string
		firstName     string
		lastName      string
		phone         string
		expectedError bool
		errorContains string
	}{
		{
			name:      "successful_create",
			firstName: "Marie",
			lastName:  "Dupont",
			phone:     "0601020304",
		},
		{
			name:          "missing_first_name",
			lastName:      "Dupont",
			phone:         "0601020304",
			expectedError: true,
			errorContains: "first_name",
		},
		{
			name:          "missing_phone",
			firstName:     "Marie",
			lastName:      "Dupont",
			expectedError: true,
			errorContains: "phone",
		},
	}

	codeShape := regexp.MustCompile(`^[A-Z]{3}\d$`)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, depositors, _, _ := newDepositorFixture(t)
			ctx := context.Background()

			d, err := svc.Create(ctx, tt.firstName, tt.lastName, tt.phone)

			if tt.expectedError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, d.ID)
			assert.Regexp(t, codeShape, d.Code)
			assert.Equal(t, "MAD", d.Code[:3])
			assert.False(t, d.CreatedAt.IsZero())
			assert.False(t, d.CheckedIn)

			stored, err := depositors.List(ctx)
			require.NoError(t, err)
			require.Len(t, stored, 1)
			assert.Equal(t, d.Code, stored[0].Code)
		})
	}
}

func TestDepositorService_Create_CodeExhausted(t *testing.T) {
	svc, depositors, _, _ := newDepositorFixture(t)
	ctx := context.Background()

	// Occupy all ten suffix slots for the MAD prefix.
	for digit := 0; digit < 10; digit++ {
		d := helpers.TestDepositor(func(d *domain.Depositor) {
			d.ID = fmt.Sprintf("dep-%d", digit)
			d.Code = fmt.Sprintf("MAD%d", digit)
		})
		require.NoError(t, depositors.Append(ctx, d))
	}

	_, err := svc.Create(ctx, "Marc", "Dubois", "0605060708")
	assert.ErrorIs(t, err, domain.ErrCodeExhausted)
}

func TestDepositorService_Create_AvoidsCollision(t *testing.T) {
	svc, depositors, _, _ := newDepositorFixture(t)
	ctx := context.Background()

	// Leave exactly one free slot; the suffix walk must always find it.
	for digit := 0; digit < 9; digit++ {
		d := helpers.TestDepositor(func(d *domain.Depositor) {
			d.ID = fmt.Sprintf("dep-%d", digit)
			d.Code = fmt.Sprintf("MAD%d", digit)
		})
		require.NoError(t, depositors.Append(ctx, d))
	}

	created, err := svc.Create(ctx, "Marc", "Dubois", "0605060708")
	require.NoError(t, err)
	assert.Equal(t, "MAD9", created.Code)
}

func TestDepositorService_Update(t *testing.T) {
	svc, depositors, _, _ := newDepositorFixture(t)
	ctx := context.Background()

	seed := helpers.TestDepositor()
	require.NoError(t, depositors.Append(ctx, seed))

	newPhone := "0707070707"
	updated, err := svc.Update(ctx, seed.ID, domain.DepositorPatch{Phone: &newPhone})
	require.NoError(t, err)
	assert.Equal(t, newPhone, updated.Phone)
	assert.Equal(t, seed.Code, updated.Code)

	_, err = svc.Update(ctx, "missing-id", domain.DepositorPatch{Phone: &newPhone})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDepositorService_Remove_LeavesOrphanedArticles(t *testing.T) {
	svc, depositors, articles, _ := newDepositorFixture(t)
	ctx := context.Background()

	seed := helpers.TestDepositor()
	require.NoError(t, depositors.Append(ctx, seed))
	require.NoError(t, articles.Append(ctx, helpers.TestArticle()))
	require.NoError(t, articles.Append(ctx, helpers.TestArticle(func(a *domain.Article) {
		a.ID = "art-2"
		a.Code = "MAD3-002"
	})))

	require.NoError(t, svc.Remove(ctx, seed.ID))

	_, err := depositors.FindByID(ctx, seed.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Removal does not cascade to the catalog.
	orphans, err := articles.List(ctx)
	require.NoError(t, err)
	assert.Len(t, orphans, 2)
}

func TestDepositorService_CheckIn(t *testing.T) {
	svc, depositors, _, _ := newDepositorFixture(t)
	ctx := context.Background()

	seed := helpers.TestDepositor()
	require.NoError(t, depositors.Append(ctx, seed))

	first, err := svc.CheckIn(ctx, seed.Code)
	require.NoError(t, err)
	assert.True(t, first.CheckedIn)
	require.NotNil(t, first.CheckedInAt)
	firstAt := *first.CheckedInAt

	again, err := svc.CheckIn(ctx, seed.Code)
	require.NoError(t, err)
	assert.True(t, again.CheckedIn)
	require.NotNil(t, again.CheckedInAt)
	assert.Equal(t, firstAt, *again.CheckedInAt)

	_, err = svc.CheckIn(ctx, "ZZZ9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDepositorService_CountArticles(t *testing.T) {
	svc, depositors, articles, _ := newDepositorFixture(t)
	ctx := context.Background()

	stale := helpers.TestDepositor(func(d *domain.Depositor) { d.ArticleCount = 99 })
	require.NoError(t, depositors.Append(ctx, stale))
	require.NoError(t, articles.Append(ctx, helpers.TestArticle()))

	count, err := svc.CountArticles(ctx, stale.Code)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "count derives from the catalog, not the stored snapshot")
}

func TestDepositorService_Create_StoreFailure(t *testing.T) {
	svc, _, _, store := newDepositorFixture(t)
	ctx := context.Background()

	store.OnSet = func(key string) error {
		if key == ports.KeyDepositors {
			return errors.New("connection refused")
		}
		return nil
	}

	_, err := svc.Create(ctx, "Marie", "Dupont", "0601020304")
	require.Error(t, err)

	var storeErr *domain.StoreError
	assert.ErrorAs(t, err, &storeErr)
}
