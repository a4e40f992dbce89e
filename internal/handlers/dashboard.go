// internal/handlers/dashboard.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/tagit-app/tagit-be/internal/core/ports"
)

// DashboardHandler serves the event-overview snapshot
type DashboardHandler struct {
	stats  ports.StatsService
	logger *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(stats ports.StatsService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		stats:  stats,
		logger: logger.With(slog.String("handler", "dashboard")),
	}
}

// GetDashboard handles GET /api/v1/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.stats.Stats(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load dashboard",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, stats)
}
