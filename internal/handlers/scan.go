// internal/handlers/scan.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tagit-app/tagit-be/internal/core/ports"
)

// ScanHandler handles scan resolution HTTP requests
type ScanHandler struct {
	service ports.ScanService
	logger  *slog.Logger
}

// NewScanHandler creates a new scan handler
func NewScanHandler(service ports.ScanService, logger *slog.Logger) *ScanHandler {
	return &ScanHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "scan")),
	}
}

// ScanRequest represents a decoded scanner payload
type ScanRequest struct {
	Code string `json:"code"`
}

// Resolve handles POST /api/v1/scan. Any payload resolves; an unknown code is
// a normal not-found result, not an HTTP error.
func (h *ScanHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Resolve(ctx, req.Code)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to resolve scan",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to resolve scan")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}
