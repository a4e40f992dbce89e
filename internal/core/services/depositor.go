// internal/core/services/depositor.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strconv"

	"github.com/tagit-app/tagit-be/internal/core/domain"
	"github.com/tagit-app/tagit-be/internal/core/ports"
)

// DepositorService handles depositor directory business logic.
type DepositorService struct {
	depositors ports.DepositorRepository
	articles   ports.ArticleRepository
	clock      ports.Clock
	logger     *slog.Logger
}

// Statically assert that *DepositorService implements the port.
var _ ports.DepositorService = (*DepositorService)(nil)

// NewDepositorService creates a new depositor service.
func NewDepositorService(depositors ports.DepositorRepository, articles ports.ArticleRepository, clock ports.Clock, logger *slog.Logger) *DepositorService {
	return &DepositorService{
		depositors: depositors,
		articles:   articles,
		clock:      clock,
		logger:     logger.With(slog.String("service", "depositor")),
	}
}

// Create registers a new depositor. The generated code is verified against the
// directory; collisions fall through to the remaining digit suffixes.
func (s *DepositorService) Create(ctx context.Context, firstName, lastName, phone string) (*domain.Depositor, error) {
	d := domain.Depositor{
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	code, err := s.uniqueCode(ctx, firstName, lastName)
	if err != nil {
		return nil, err
	}
	d.Code = code
	d.PrepareForStorage(s.clock.Now())

	if err := s.depositors.Append(ctx, d); err != nil {
		return nil, fmt.Errorf("failed to save depositor: %w", err)
	}

	s.logger.InfoContext(ctx, "depositor created",
		slog.String("id", d.ID),
		slog.String("code", d.Code))

	return &d, nil
}

// uniqueCode allocates a code over the name's deterministic prefix. The ten
// digit suffixes are tried once each in random order, so ErrCodeExhausted
// means the prefix is genuinely full, never that the dice came up unlucky.
func (s *DepositorService) uniqueCode(ctx context.Context, firstName, lastName string) (string, error) {
	prefix := domain.DepositorCodePrefix(firstName, lastName)
	for _, digit := range rand.Perm(10) {
		code := prefix + strconv.Itoa(digit)
		_, err := s.depositors.FindByCode(ctx, code)
		if errors.Is(err, domain.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to verify code candidate: %w", err)
		}
	}
	return "", domain.ErrCodeExhausted
}

// Update edits a depositor's contact fields. The code never changes.
func (s *DepositorService) Update(ctx context.Context, id string, patch domain.DepositorPatch) (*domain.Depositor, error) {
	d, err := s.depositors.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load depositor %s: %w", id, err)
	}

	patch.Apply(d)
	if err := d.Validate(); err != nil {
		return nil, err
	}

	if err := s.depositors.Replace(ctx, *d); err != nil {
		return nil, fmt.Errorf("failed to update depositor %s: %w", id, err)
	}
	return d, nil
}

// Remove deletes a depositor. Removal does not cascade: articles holding the
// depositor's code stay in the catalog as orphans, which is logged.
func (s *DepositorService) Remove(ctx context.Context, id string) error {
	d, err := s.depositors.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load depositor %s: %w", id, err)
	}

	orphans, err := s.articles.CountByDepositorCode(ctx, d.Code)
	if err != nil {
		return fmt.Errorf("failed to count articles for %s: %w", d.Code, err)
	}

	if err := s.depositors.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete depositor %s: %w", id, err)
	}

	if orphans > 0 {
		s.logger.WarnContext(ctx, "depositor removed leaving orphaned articles",
			slog.String("code", d.Code),
			slog.Int("orphaned_articles", orphans))
	} else {
		s.logger.InfoContext(ctx, "depositor removed", slog.String("code", d.Code))
	}
	return nil
}

// CheckIn marks the depositor with the given code as physically registered.
// Checking in twice keeps the original timestamp.
func (s *DepositorService) CheckIn(ctx context.Context, code string) (*domain.Depositor, error) {
	d, err := s.depositors.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to load depositor %s: %w", code, err)
	}
	if d.CheckedIn {
		return d, nil
	}

	d.CheckIn(s.clock.Now())
	if err := s.depositors.Replace(ctx, *d); err != nil {
		return nil, fmt.Errorf("failed to check in depositor %s: %w", code, err)
	}

	s.logger.InfoContext(ctx, "depositor checked in", slog.String("code", code))
	return d, nil
}

// List returns all depositors in registration order.
func (s *DepositorService) List(ctx context.Context) ([]domain.Depositor, error) {
	return s.depositors.List(ctx)
}

// GetByCode returns the depositor with the given code.
func (s *DepositorService) GetByCode(ctx context.Context, code string) (*domain.Depositor, error) {
	return s.depositors.FindByCode(ctx, code)
}

// CountArticles derives the live article count for a depositor code from the
// catalog. The ArticleCount field stored on the depositor is a creation-time
// snapshot and is deliberately not kept in sync.
func (s *DepositorService) CountArticles(ctx context.Context, code string) (int, error) {
	return s.articles.CountByDepositorCode(ctx, code)
}
