// internal/handlers/scan_handler_test.go
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagit-app/tagit-be/internal/adapters/collections"
	"github.com/tagit-app/tagit-be/internal/core/ports"
	"github.com/tagit-app/tagit-be/internal/core/services"
	"github.com/tagit-app/tagit-be/internal/handlers"
	"github.com/tagit-app/tagit-be/test/helpers"
)

func newScanHandlerMux(t *testing.T) *http.ServeMux {
	t.Helper()
	store := helpers.NewMemoryStore()
	logger := helpers.TestLogger()
	depositors := collections.NewDepositorRepository(store, logger)
	articles := collections.NewArticleRepository(store, logger)

	ctx := context.Background()
	require.NoError(t, depositors.Append(ctx, helpers.TestDepositor()))
	require.NoError(t, articles.Append(ctx, helpers.TestArticle()))

	svc := services.NewScanService(depositors, articles, logger)
	handler := handlers.NewScanHandler(svc, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/scan", handler.Resolve)
	return mux
}

func TestScanHandler_Resolve(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedFound  bool
	}{
		{
			name:           "known_article",
			body:           `{"code":"MAD3-001"}`,
			expectedStatus: http.StatusOK,
			expectedFound:  true,
		},
		{
			name:           "known_depositor",
			body:           `{"code":"MAD3"}`,
			expectedStatus: http.StatusOK,
			expectedFound:  true,
		},
		{
			name:           "unknown_code_is_still_200",
			body:           `{"code":"ZZZ9-042"}`,
			expectedStatus: http.StatusOK,
			expectedFound:  false,
		},
		{
			// The scanner contract accepts any string, the blank one included.
			name:           "empty_code_is_not_found",
			body:           `{"code":""}`,
			expectedStatus: http.StatusOK,
			expectedFound:  false,
		},
		{
			name:           "malformed_body",
			body:           `{`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newScanHandlerMux(t)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/scan", bytes.NewBufferString(tt.body)))

			require.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var result ports.ScanResult
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
			assert.Equal(t, tt.expectedFound, result.Found)
		})
	}
}
