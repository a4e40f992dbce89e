// internal/core/ports/storage.go
package ports

import (
	"context"
	"io"
	"time"
)

// PhotoStorage stores article photos outside the key-value store. Articles
// reference photos by key through their PhotoRef field.
type PhotoStorage interface {
	// Upload stores a photo and returns the storage key to record as PhotoRef.
	Upload(ctx context.Context, articleCode string, data io.Reader, contentType string) (string, error)
	// PresignedURL returns a short-lived direct download URL for a stored key.
	PresignedURL(ctx context.Context, key string, duration time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
