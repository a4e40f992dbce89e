// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/tagit-app/tagit-be/internal/core/ports"
)

// CleanupProcessor clears stale scratch state. The cart is per-till scratch
// space; entries untouched for longer than maxAge are an abandoned sale, while
// a recently written cart may belong to a checkout in progress and is left
// alone.
type CleanupProcessor struct {
	cart   ports.CartRepository
	maxAge time.Duration
	clock  ports.Clock
	logger *slog.Logger
}

// NewCleanupProcessor creates a new cleanup processor. maxAge is the idle
// threshold past which a non-empty cart is swept.
func NewCleanupProcessor(cart ports.CartRepository, maxAge time.Duration, clock ports.Clock, logger *slog.Logger) *CleanupProcessor {
	return &CleanupProcessor{
		cart:   cart,
		maxAge: maxAge,
		clock:  clock,
		logger: logger.With(slog.String("processor", "cleanup")),
	}
}

// CleanupCart drops the temporary cart once it has sat untouched beyond the
// idle threshold. A cart with no write marker predates the marker and is
// treated as stale.
func (p *CleanupProcessor) CleanupCart(ctx context.Context, t *asynq.Task) error {
	flat, err := p.cart.LoadFlat(ctx)
	if err != nil {
		return fmt.Errorf("failed to inspect cart: %w", err)
	}
	if len(flat) == 0 {
		return nil
	}

	touchedAt, err := p.cart.TouchedAt(ctx)
	if err != nil {
		return fmt.Errorf("failed to read cart write marker: %w", err)
	}
	if !touchedAt.IsZero() {
		idle := p.clock.Now().Sub(touchedAt)
		if idle < p.maxAge {
			p.logger.DebugContext(ctx, "cart still fresh, leaving it alone",
				slog.Duration("idle", idle),
				slog.Duration("max_age", p.maxAge))
			return nil
		}
	}

	if err := p.cart.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear stale cart: %w", err)
	}

	p.logger.InfoContext(ctx, "stale cart cleared",
		slog.Int("abandoned_entries", len(flat)),
		slog.Time("last_write", touchedAt))

	return nil
}
