// internal/adapters/collections/depositor_repository.go
package collections

import (
	"context"
	"log/slog"

	"github.com/tagit-app/tagit-be/internal/core/domain"
	"github.com/tagit-app/tagit-be/internal/core/ports"
)

// DepositorRepository persists depositors under the "depositors" key.
type DepositorRepository struct {
	store  ports.KeyValueStore
	logger *slog.Logger
}

// Statically assert that *DepositorRepository implements the port.
var _ ports.DepositorRepository = (*DepositorRepository)(nil)

// NewDepositorRepository creates a depositor repository.
func NewDepositorRepository(store ports.KeyValueStore, logger *slog.Logger) *DepositorRepository {
	return &DepositorRepository{
		store:  store,
		logger: logger.With(slog.String("repository", "depositors")),
	}
}

// List returns the depositors in stored order.
func (r *DepositorRepository) List(ctx context.Context) ([]domain.Depositor, error) {
	return loadAll[domain.Depositor](ctx, r.store, ports.KeyDepositors)
}

// FindByID returns the depositor with the given id, or ErrNotFound.
func (r *DepositorRepository) FindByID(ctx context.Context, id string) (*domain.Depositor, error) {
	depositors, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range depositors {
		if depositors[i].ID == id {
			return &depositors[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// FindByCode returns the depositor with the given code, or ErrNotFound.
func (r *DepositorRepository) FindByCode(ctx context.Context, code string) (*domain.Depositor, error) {
	depositors, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range depositors {
		if depositors[i].Code == code {
			return &depositors[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// Append adds a depositor to the collection.
func (r *DepositorRepository) Append(ctx context.Context, d domain.Depositor) error {
	depositors, err := r.List(ctx)
	if err != nil {
		return err
	}
	return saveAll(ctx, r.store, ports.KeyDepositors, append(depositors, d))
}

// Replace overwrites the stored depositor with the same id, or returns
// ErrNotFound.
func (r *DepositorRepository) Replace(ctx context.Context, d domain.Depositor) error {
	depositors, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i := range depositors {
		if depositors[i].ID == d.ID {
			depositors[i] = d
			return saveAll(ctx, r.store, ports.KeyDepositors, depositors)
		}
	}
	return domain.ErrNotFound
}

// Delete removes the depositor with the given id, or returns ErrNotFound.
// Articles referencing the depositor's code are left untouched.
func (r *DepositorRepository) Delete(ctx context.Context, id string) error {
	depositors, err := r.List(ctx)
	if err != nil {
		return err
	}
	kept := depositors[:0]
	for _, d := range depositors {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(depositors) {
		return domain.ErrNotFound
	}
	return saveAll(ctx, r.store, ports.KeyDepositors, kept)
}
