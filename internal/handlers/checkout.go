// internal/handlers/checkout.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/tagit-app/tagit-be/internal/core/ports"
)

// CheckoutHandler handles sale finalization HTTP requests
type CheckoutHandler struct {
	service ports.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(service ports.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "checkout")),
	}
}

// Checkout handles POST /api/v1/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sale, err := h.service.Checkout(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "checkout failed",
			slog.String("error", err.Error()))
		respondDomainError(w, h.logger, err, "Checkout failed")
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, sale)
}
