// internal/adapters/tasks/enqueuer.go
package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/tagit-app/tagit-be/internal/core/ports"
	"github.com/tagit-app/tagit-be/internal/workers"
)

// Enqueuer schedules background work through asynq. Both task types carry no
// payload; the processors read everything they need from the store.
type Enqueuer struct {
	client *asynq.Client
	logger *slog.Logger
}

// Statically assert that *Enqueuer implements the port.
var _ ports.TaskEnqueuer = (*Enqueuer)(nil)

// NewEnqueuer creates a new task enqueuer on an asynq client.
func NewEnqueuer(client *asynq.Client, logger *slog.Logger) *Enqueuer {
	return &Enqueuer{
		client: client,
		logger: logger.With(slog.String("component", "enqueuer")),
	}
}

// EnqueueReconcileSold schedules a ledger-to-catalog reconciliation pass.
func (e *Enqueuer) EnqueueReconcileSold(ctx context.Context) error {
	return e.enqueue(ctx, workers.TypeReconcileSold,
		asynq.Queue("critical"),
		asynq.MaxRetry(5),
		asynq.Retention(24*time.Hour))
}

// EnqueueCartCleanup schedules a stale-cart sweep.
func (e *Enqueuer) EnqueueCartCleanup(ctx context.Context) error {
	return e.enqueue(ctx, workers.TypeCartCleanup,
		asynq.Queue("low"),
		asynq.MaxRetry(3))
}

func (e *Enqueuer) enqueue(ctx context.Context, taskType string, opts ...asynq.Option) error {
	task := asynq.NewTask(taskType, nil)
	info, err := e.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", taskType, err)
	}

	e.logger.InfoContext(ctx, "task enqueued",
		slog.String("type", taskType),
		slog.String("task_id", info.ID),
		slog.String("queue", info.Queue))

	return nil
}

// Close releases the underlying asynq client.
func (e *Enqueuer) Close() error {
	return e.client.Close()
}
