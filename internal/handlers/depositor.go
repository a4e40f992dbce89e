// internal/handlers/depositor.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tagit-app/tagit-be/internal/core/domain"
	"github.com/tagit-app/tagit-be/internal/core/ports"
)

// DepositorHandler handles depositor directory HTTP requests
type DepositorHandler struct {
	service ports.DepositorService
	logger  *slog.Logger
}

// NewDepositorHandler creates a new depositor handler
func NewDepositorHandler(service ports.DepositorService, logger *slog.Logger) *DepositorHandler {
	return &DepositorHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "depositor")),
	}
}

// CreateDepositorRequest represents the request body for registering a depositor
type CreateDepositorRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// Create handles POST /api/v1/depositors
func (h *DepositorHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateDepositorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	depositor, err := h.service.Create(ctx, req.FirstName, req.LastName, req.Phone)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create depositor",
			slog.String("error", err.Error()))
		respondDomainError(w, h.logger, err, "Failed to create depositor")
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, depositor)
}

// List handles GET /api/v1/depositors
func (h *DepositorHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	depositors, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list depositors",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to list depositors")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"depositors": depositors,
		"count":      len(depositors),
	})
}

// Get handles GET /api/v1/depositors/{code}
func (h *DepositorHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := r.PathValue("code")

	depositor, err := h.service.GetByCode(ctx, code)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to retrieve depositor")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, depositor)
}

// Update handles PATCH /api/v1/depositors/{id}
func (h *DepositorHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	var patch domain.DepositorPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	depositor, err := h.service.Update(ctx, id, patch)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to update depositor",
			slog.String("id", id),
			slog.String("error", err.Error()))
		respondDomainError(w, h.logger, err, "Failed to update depositor")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, depositor)
}

// Delete handles DELETE /api/v1/depositors/{id}
func (h *DepositorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	if err := h.service.Remove(ctx, id); err != nil {
		respondDomainError(w, h.logger, err, "Failed to delete depositor")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]string{
		"message": "Depositor deleted successfully",
		"id":      id,
	})
}

// CheckIn handles POST /api/v1/depositors/{code}/checkin
func (h *DepositorHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := r.PathValue("code")

	depositor, err := h.service.CheckIn(ctx, code)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to check in depositor")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, depositor)
}

// CountArticles handles GET /api/v1/depositors/{code}/articles/count
func (h *DepositorHandler) CountArticles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := r.PathValue("code")

	count, err := h.service.CountArticles(ctx, code)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to count articles")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"code":  code,
		"count": count,
	})
}
