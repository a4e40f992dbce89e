// test/helpers/helpers.go
package helpers

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/tagit-app/tagit-be/internal/core/domain"
	"github.com/tagit-app/tagit-be/internal/core/ports"
)

// TestLogger returns a test logger.
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// TestRedis represents a test Redis instance.
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// SetupTestRedis starts a miniredis server wired to a go-redis client.
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return &TestRedis{Client: client, Server: mr}
}

// MemoryStore is an in-memory KeyValueStore for service-level tests. OnSet,
// OnGet and OnRemove, when set, run before the operation and can inject
// failures.
type MemoryStore struct {
	mu       sync.Mutex
	data     map[string]string
	OnSet    func(key string) error
	OnGet    func(key string) error
	OnRemove func(key string) error
}

// Statically assert that *MemoryStore implements the KeyValueStore interface.
var _ ports.KeyValueStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if m.OnGet != nil {
		if err := m.OnGet(key); err != nil {
			return "", false, &domain.StoreError{Op: "get", Key: key, Err: err}
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	value, found := m.data[key]
	return value, found, nil
}

func (m *MemoryStore) Set(ctx context.Context, key, value string) error {
	if m.OnSet != nil {
		if err := m.OnSet(key); err != nil {
			return &domain.StoreError{Op: "set", Key: key, Err: err}
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Remove(ctx context.Context, key string) error {
	if m.OnRemove != nil {
		if err := m.OnRemove(key); err != nil {
			return &domain.StoreError{Op: "remove", Key: key, Err: err}
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryStore) Ping(ctx context.Context) error { return nil }

// Raw returns the stored blob for key, for assertions on persisted state.
func (m *MemoryStore) Raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, found := m.data[key]
	return value, found
}

// SeedRaw stores a blob verbatim, bypassing the repositories. Useful for
// corrupt-payload scenarios.
func (m *MemoryStore) SeedRaw(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// FixedClock returns a Clock pinned to the given instant.
func FixedClock(at time.Time) ports.Clock {
	return ports.ClockFunc(func() time.Time { return at })
}

// TestDepositor creates a valid depositor, optionally customized.
func TestDepositor(opts ...func(*domain.Depositor)) domain.Depositor {
	d := domain.Depositor{
		ID:        "dep-1",
		Code:      "MAD3",
		FirstName: "Marie",
		LastName:  "Dupont",
		Phone:     "0601020304",
		CreatedAt: time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// TestArticle creates a valid article, optionally customized.
func TestArticle(opts ...func(*domain.Article)) domain.Article {
	a := domain.Article{
		ID:            "art-1",
		Code:          "MAD3-001",
		DepositorCode: "MAD3",
		DepositorName: "Marie Dupont",
		Size:          "M",
		Sex:           "F",
		Price:         decimal.NewFromInt(10),
		CreatedAt:     time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}
