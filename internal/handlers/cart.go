// internal/handlers/cart.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tagit-app/tagit-be/internal/core/ports"
)

// CartHandler handles sale cart HTTP requests
type CartHandler struct {
	cart     ports.CartService
	articles ports.ArticleService
	logger   *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cart ports.CartService, articles ports.ArticleService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		cart:     cart,
		articles: articles,
		logger:   logger.With(slog.String("handler", "cart")),
	}
}

// View handles GET /api/v1/cart
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	view, err := h.cart.View(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load cart",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to load cart")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, view)
}

// AddItemRequest represents the request body for adding a scanned article
type AddItemRequest struct {
	Code string `json:"code"`
}

// AddItem handles POST /api/v1/cart/items. The article is resolved from the
// catalog at add time so the cart snapshot carries its current price.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	article, err := h.articles.GetByCode(ctx, req.Code)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to resolve article")
		return
	}

	view, err := h.cart.Add(ctx, *article)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to add article to cart",
			slog.String("code", req.Code),
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to add article to cart")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, view)
}

// ChangeQuantityRequest represents the request body for adjusting a quantity
type ChangeQuantityRequest struct {
	Delta int `json:"delta"`
}

// ChangeQuantity handles PATCH /api/v1/cart/items/{code}
func (h *CartHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := r.PathValue("code")

	var req ChangeQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.cart.ChangeQuantity(ctx, code, req.Delta)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to adjust quantity")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, view)
}

// RemoveItem handles DELETE /api/v1/cart/items/{code}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := r.PathValue("code")

	view, err := h.cart.Remove(ctx, code)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to remove article from cart")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, view)
}

// Clear handles DELETE /api/v1/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.cart.Clear(ctx); err != nil {
		h.logger.ErrorContext(ctx, "failed to clear cart",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]string{
		"message": "Cart cleared",
	})
}
