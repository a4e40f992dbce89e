// internal/adapters/pg_store/store.go
package pg_store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tagit-app/tagit-be/internal/core/domain"
	"github.com/tagit-app/tagit-be/internal/core/ports"
)

// Config holds PostgreSQL connection configuration.
type Config struct {
	Host              string
	Port              string
	User              string
	Password          string
	Database          string
	SSLMode           string
	MaxConnections    int32
	MinConnections    int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
	ConnectTimeout    time.Duration
}

// Store implements the key-value persistence contract on PostgreSQL. The
// contract is the same blob-per-key model the rest of the system assumes, so
// the schema is a single table; no row-level access is offered.
type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// Statically assert that *Store implements the KeyValueStore interface.
var _ ports.KeyValueStore = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS kv_blobs (
    key        text PRIMARY KEY,
    value      text NOT NULL,
    updated_at timestamptz NOT NULL DEFAULT now()
)`

// New creates a PostgreSQL-backed store and ensures its schema.
func New(ctx context.Context, cfg *Config, logger *slog.Logger) (*Store, error) {
	poolConfig, err := buildPoolConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build pool config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	logger.Info("postgres store ready",
		slog.String("host", cfg.Host),
		slog.String("database", cfg.Database),
		slog.Int("max_connections", int(cfg.MaxConnections)))

	return &Store{
		pool:   pool,
		logger: logger.With(slog.String("store", "postgres")),
	}, nil
}

func buildPoolConfig(cfg *Config) (*pgxpool.Config, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d",
		cfg.Host, cfg.Port, cfg.User, cfg.Password,
		cfg.Database, cfg.SSLMode, int(cfg.ConnectTimeout.Seconds()),
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConnections
	poolConfig.MinConns = cfg.MinConnections
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolConfig.HealthCheckPeriod = cfg.HealthCheckPeriod

	return poolConfig, nil
}

// Get returns the serialized blob for key; absence is not an error.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM kv_blobs WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.DebugContext(ctx, "key absent", slog.String("key", key))
			return "", false, nil
		}
		return "", false, &domain.StoreError{Op: "get", Key: key, Err: err}
	}
	return value, true, nil
}

// Set stores the serialized blob for key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO kv_blobs (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to set key",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return &domain.StoreError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Remove deletes key. Removing an absent key succeeds.
func (s *Store) Remove(ctx context.Context, key string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM kv_blobs WHERE key = $1`, key); err != nil {
		return &domain.StoreError{Op: "remove", Key: key, Err: err}
	}
	return nil
}

// Ping checks if the database is accessible.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return &domain.StoreError{Op: "ping", Err: err}
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}
