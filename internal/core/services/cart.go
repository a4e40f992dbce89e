// internal/core/services/cart.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tagit-app/tagit-be/internal/core/domain"
	"github.com/tagit-app/tagit-be/internal/core/ports"
)

// CartService maintains the ephemeral sale cart. Every mutation is a
// read-modify-write of the flat persisted form: the new state is only
// reported back once the write has landed, and a failed write leaves the
// stored cart unchanged.
type CartService struct {
	cart   ports.CartRepository
	logger *slog.Logger
}

// Statically assert that *CartService implements the port.
var _ ports.CartService = (*CartService)(nil)

// NewCartService creates a new cart service.
func NewCartService(cart ports.CartRepository, logger *slog.Logger) *CartService {
	return &CartService{
		cart:   cart,
		logger: logger.With(slog.String("service", "cart")),
	}
}

// Add appends one unit of the article to the cart. Scanning the same code
// again adds another flat entry; the grouped view counts them.
func (s *CartService) Add(ctx context.Context, article domain.Article) (*ports.CartView, error) {
	flat, err := s.cart.LoadFlat(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	flat = append(flat, article)
	if err := s.cart.SaveFlat(ctx, flat); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	s.logger.InfoContext(ctx, "article added to cart",
		slog.String("code", article.Code),
		slog.Int("cart_size", len(flat)))

	return viewOf(flat), nil
}

// ChangeQuantity adjusts the grouped quantity for code by delta. A resulting
// quantity of zero or less removes the entry. The flat form is regenerated by
// duplicating the snapshot quantity times.
func (s *CartService) ChangeQuantity(ctx context.Context, code string, delta int) (*ports.CartView, error) {
	flat, err := s.cart.LoadFlat(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	items := domain.GroupCart(flat)
	found := false
	kept := items[:0]
	for _, it := range items {
		if it.Article.Code == code {
			found = true
			it.Quantity += delta
			if it.Quantity <= 0 {
				continue
			}
		}
		kept = append(kept, it)
	}
	if !found {
		return nil, domain.ErrNotFound
	}

	newFlat := domain.FlattenCart(kept)
	if err := s.cart.SaveFlat(ctx, newFlat); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return viewOf(newFlat), nil
}

// Remove drops all entries for code from the cart.
func (s *CartService) Remove(ctx context.Context, code string) (*ports.CartView, error) {
	flat, err := s.cart.LoadFlat(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	kept := flat[:0]
	for _, a := range flat {
		if a.Code != code {
			kept = append(kept, a)
		}
	}

	if err := s.cart.SaveFlat(ctx, kept); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return viewOf(kept), nil
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context) error {
	if err := s.cart.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	s.logger.InfoContext(ctx, "cart cleared")
	return nil
}

// View returns the grouped cart and its recomputed total.
func (s *CartService) View(ctx context.Context) (*ports.CartView, error) {
	flat, err := s.cart.LoadFlat(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return viewOf(flat), nil
}

func viewOf(flat []domain.Article) *ports.CartView {
	items := domain.GroupCart(flat)
	return &ports.CartView{
		Items: items,
		Total: domain.CartTotal(items),
	}
}
