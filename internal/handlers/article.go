// internal/handlers/article.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tagit-app/tagit-be/internal/core/domain"
	"github.com/tagit-app/tagit-be/internal/core/ports"
)

// maxPhotoSize bounds the accepted photo upload, in bytes.
const maxPhotoSize = 10 << 20

// ArticleHandler handles article catalog HTTP requests
type ArticleHandler struct {
	service ports.ArticleService
	query   ports.QueryService
	photos  ports.PhotoStorage
	logger  *slog.Logger
}

// NewArticleHandler creates a new article handler. photos may be nil when no
// photo storage is configured; the photo endpoints then return 503.
func NewArticleHandler(service ports.ArticleService, query ports.QueryService, photos ports.PhotoStorage, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{
		service: service,
		query:   query,
		photos:  photos,
		logger:  logger.With(slog.String("handler", "article")),
	}
}

// CreateArticleRequest represents the request body for registering an article
type CreateArticleRequest struct {
	DepositorCode string          `json:"depositor_code"`
	PhotoRef      string          `json:"photo_ref,omitempty"`
	Size          string          `json:"size"`
	Sex           string          `json:"sex"`
	Price         decimal.Decimal `json:"price"`
	Location      string          `json:"location,omitempty"`
}

// Create handles POST /api/v1/articles
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	article, err := h.service.Create(ctx, ports.NewArticle{
		DepositorCode: req.DepositorCode,
		PhotoRef:      req.PhotoRef,
		Size:          req.Size,
		Sex:           req.Sex,
		Price:         req.Price,
		Location:      req.Location,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create article",
			slog.String("depositor_code", req.DepositorCode),
			slog.String("error", err.Error()))
		respondDomainError(w, h.logger, err, "Failed to create article")
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, article)
}

// Search handles GET /api/v1/articles. Without query parameters it lists the
// whole catalog.
func (h *ArticleHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := parseSearchParams(r)

	articles, err := h.query.Search(ctx, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to search articles",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to search articles")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"articles": articles,
		"count":    len(articles),
	})
}

func parseSearchParams(r *http.Request) ports.SearchParams {
	q := r.URL.Query()

	sold := ports.SoldAll
	switch q.Get("sold") {
	case "true", "sold":
		sold = ports.SoldOnly
	case "false", "available":
		sold = ports.SoldAvailable
	}

	return ports.SearchParams{
		Query:    q.Get("q"),
		Size:     q.Get("size"),
		Sex:      q.Get("sex"),
		PriceMin: q.Get("price_min"),
		PriceMax: q.Get("price_max"),
		Sold:     sold,
	}
}

// Get handles GET /api/v1/articles/{code}
func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := r.PathValue("code")

	article, err := h.service.GetByCode(ctx, code)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to retrieve article")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, article)
}

// Update handles PATCH /api/v1/articles/{id}
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	var patch domain.ArticlePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	article, err := h.service.Update(ctx, id, patch)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to update article",
			slog.String("id", id),
			slog.String("error", err.Error()))
		respondDomainError(w, h.logger, err, "Failed to update article")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, article)
}

// Delete handles DELETE /api/v1/articles/{id}
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	if err := h.service.Remove(ctx, id); err != nil {
		respondDomainError(w, h.logger, err, "Failed to delete article")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]string{
		"message": "Article deleted successfully",
		"id":      id,
	})
}

// MarkSoldRequest represents the request body for bulk sold marking
type MarkSoldRequest struct {
	Codes []string `json:"codes"`
}

// MarkSold handles POST /api/v1/articles/mark-sold
func (h *ArticleHandler) MarkSold(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req MarkSoldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.MarkSold(ctx, req.Codes)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to mark articles sold",
			slog.Int("codes", len(req.Codes)),
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to mark articles sold")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"updated": updated,
		"count":   len(updated),
	})
}

// UploadPhoto handles POST /api/v1/articles/{code}/photo
func (h *ArticleHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := r.PathValue("code")

	if h.photos == nil {
		respondError(w, h.logger, http.StatusServiceUnavailable, "Photo storage is not configured")
		return
	}

	article, err := h.service.GetByCode(ctx, code)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to retrieve article")
		return
	}

	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Failed to parse upload")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "No photo provided")
		return
	}
	defer file.Close()

	key, err := h.photos.Upload(ctx, code, file, header.Header.Get("Content-Type"))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to store photo",
			slog.String("code", code),
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to store photo")
		return
	}

	updated, err := h.service.Update(ctx, article.ID, domain.ArticlePatch{PhotoRef: &key})
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to attach photo")
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, updated)
}

// GetPhoto handles GET /api/v1/articles/{code}/photo. It responds with a
// short-lived download URL rather than proxying the bytes.
func (h *ArticleHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := r.PathValue("code")

	if h.photos == nil {
		respondError(w, h.logger, http.StatusServiceUnavailable, "Photo storage is not configured")
		return
	}

	article, err := h.service.GetByCode(ctx, code)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to retrieve article")
		return
	}
	if article.PhotoRef == "" {
		respondError(w, h.logger, http.StatusNotFound, "Article has no photo")
		return
	}

	url, err := h.photos.PresignedURL(ctx, article.PhotoRef, 15*time.Minute)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to presign photo URL",
			slog.String("code", code),
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to generate photo URL")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]string{
		"code": code,
		"url":  url,
	})
}
