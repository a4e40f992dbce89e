// internal/adapters/redis_store/store.go
package redis_store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/tagit-app/tagit-be/internal/core/domain"
	"github.com/tagit-app/tagit-be/internal/core/ports"
)

// Store implements the key-value persistence contract on Redis. Each
// collection key holds one serialized JSON array; values never expire.
type Store struct {
	client *redis.Client
	logger *slog.Logger
}

// Statically assert that *Store implements the KeyValueStore interface.
var _ ports.KeyValueStore = (*Store)(nil)

// New creates a Redis-backed store.
func New(client *redis.Client, logger *slog.Logger) *Store {
	return &Store{
		client: client,
		logger: logger.With(slog.String("store", "redis")),
	}
}

// Get returns the serialized blob for key; absence is not an error.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			s.logger.DebugContext(ctx, "key absent", slog.String("key", key))
			return "", false, nil
		}
		return "", false, &domain.StoreError{Op: "get", Key: key, Err: err}
	}
	return value, true, nil
}

// Set stores the serialized blob for key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		s.logger.ErrorContext(ctx, "failed to set key",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return &domain.StoreError{Op: "set", Key: key, Err: err}
	}
	s.logger.DebugContext(ctx, "key set",
		slog.String("key", key),
		slog.Int("bytes", len(value)))
	return nil
}

// Remove deletes key. Removing an absent key succeeds.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.logger.ErrorContext(ctx, "failed to remove key",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return &domain.StoreError{Op: "remove", Key: key, Err: err}
	}
	return nil
}

// Ping checks if Redis is accessible.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return &domain.StoreError{Op: "ping", Err: err}
	}
	return nil
}
