// internal/adapters/collections/collection.go

// Package collections implements the persistence ports on top of the
// key-value store contract. Each collection lives under one well-known key as
// a single JSON array; every operation is a whole-collection read-modify-write
// because the store offers no partial access.
package collections

import (
	"context"
	"encoding/json"

	"github.com/tagit-app/tagit-be/internal/core/domain"
	"github.com/tagit-app/tagit-be/internal/core/ports"
)

// loadAll reads and decodes the collection blob at key. An absent key is an
// empty collection.
func loadAll[T any](ctx context.Context, store ports.KeyValueStore, key string) ([]T, error) {
	value, found, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found || value == "" {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(value), &items); err != nil {
		return nil, &domain.StoreError{Op: "decode", Key: key, Err: err}
	}
	return items, nil
}

// saveAll encodes and writes the whole collection blob at key.
func saveAll[T any](ctx context.Context, store ports.KeyValueStore, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return &domain.StoreError{Op: "encode", Key: key, Err: err}
	}
	return store.Set(ctx, key, string(data))
}
