package domain_test

import (
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagit-app/tagit-be/internal/core/domain"
)

func cartArticle(code string, price float64) domain.Article {
	return domain.Article{
		ID:            "id-" + code,
		Code:          code,
		DepositorCode: "ABC7",
		DepositorName: "Marie Dupont",
		Size:          "M",
		Sex:           "F",
		Price:         decimal.NewFromFloat(price),
	}
}

func TestGroupCart_CountsDuplicatesInFirstSeenOrder(t *testing.T) {
	flat := []domain.Article{
		cartArticle("AB3-001", 10),
		cartArticle("CD4-002", 5),
		cartArticle("AB3-001", 10),
		cartArticle("EF5-003", 8),
		cartArticle("AB3-001", 10),
	}

	grouped := domain.GroupCart(flat)

	require.Len(t, grouped, 3)
	assert.Equal(t, "AB3-001", grouped[0].Article.Code)
	assert.Equal(t, 3, grouped[0].Quantity)
	assert.Equal(t, "CD4-002", grouped[1].Article.Code)
	assert.Equal(t, 1, grouped[1].Quantity)
	assert.Equal(t, "EF5-003", grouped[2].Article.Code)
	assert.Equal(t, 1, grouped[2].Quantity)
}

func TestGroupCart_Empty(t *testing.T) {
	assert.Empty(t, domain.GroupCart(nil))
	assert.Empty(t, domain.GroupCart([]domain.Article{}))
}

func TestFlattenCart_RoundTripIsMultisetEqual(t *testing.T) {
	flat := []domain.Article{
		cartArticle("AB3-001", 10),
		cartArticle("CD4-002", 5),
		cartArticle("AB3-001", 10),
		cartArticle("AB3-001", 10),
		cartArticle("CD4-002", 5),
	}

	roundTripped := domain.FlattenCart(domain.GroupCart(flat))
	require.Len(t, roundTripped, len(flat))

	codes := func(as []domain.Article) []string {
		out := make([]string, len(as))
		for i, a := range as {
			out[i] = a.Code
		}
		sort.Strings(out)
		return out
	}
	assert.Equal(t, codes(flat), codes(roundTripped))
}

func TestCartTotal(t *testing.T) {
	items := domain.GroupCart([]domain.Article{
		cartArticle("AB31", 10),
		cartArticle("AB31", 10),
		cartArticle("CD42", 5),
	})

	assert.True(t, domain.CartTotal(items).Equal(decimal.NewFromInt(25)),
		"total = %s", domain.CartTotal(items))
	assert.True(t, domain.CartTotal(nil).IsZero())
}
