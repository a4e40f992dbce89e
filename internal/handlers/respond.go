// internal/handlers/respond.go
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tagit-app/tagit-be/internal/core/domain"
)

func respondJSON(w http.ResponseWriter, logger *slog.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func respondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	respondJSON(w, logger, status, map[string]string{"error": message})
}

// respondDomainError maps domain errors onto HTTP statuses. Anything
// unrecognized is a 500 with a generic message.
func respondDomainError(w http.ResponseWriter, logger *slog.Logger, err error, fallback string) {
	var validation *domain.ValidationError
	var immutable *domain.ImmutableFieldError

	switch {
	case errors.As(err, &validation):
		respondError(w, logger, http.StatusBadRequest, validation.Error())
	case errors.As(err, &immutable):
		respondError(w, logger, http.StatusConflict, immutable.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, logger, http.StatusNotFound, "Resource not found")
	case errors.Is(err, domain.ErrEmptyCart):
		respondError(w, logger, http.StatusConflict, "Cart is empty")
	case errors.Is(err, domain.ErrCodeExhausted):
		respondError(w, logger, http.StatusConflict, "No free code remains for this name")
	default:
		respondError(w, logger, http.StatusInternalServerError, fallback)
	}
}
