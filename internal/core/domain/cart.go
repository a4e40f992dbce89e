// internal/core/domain/cart.go
package domain

import "github.com/shopspring/decimal"

// CartItem is the grouped view of the cart: one article snapshot plus how many
// units of that code were scanned.
type CartItem struct {
	Article  Article `json:"article"`
	Quantity int     `json:"quantity"`
}

// GroupCart folds the flat persisted cart (one entry per scanned unit,
// duplicates allowed) into grouped items keyed by article code. Iteration order
// is the insertion order of each code's first occurrence; that order drives the
// displayed cart and the sale snapshot.
func GroupCart(flat []Article) []CartItem {
	index := make(map[string]int, len(flat))
	var grouped []CartItem
	for _, a := range flat {
		if i, ok := index[a.Code]; ok {
			grouped[i].Quantity++
			continue
		}
		index[a.Code] = len(grouped)
		grouped = append(grouped, CartItem{Article: a, Quantity: 1})
	}
	return grouped
}

// FlattenCart expands grouped items back into the flat persisted form,
// duplicating each snapshot quantity times. FlattenCart(GroupCart(flat)) is a
// multiset-equal permutation of flat.
func FlattenCart(items []CartItem) []Article {
	var flat []Article
	for _, it := range items {
		for i := 0; i < it.Quantity; i++ {
			flat = append(flat, it.Article)
		}
	}
	return flat
}

// CartTotal sums price*quantity over the grouped items. It is recomputed on
// every mutation, never cached.
func CartTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Article.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
