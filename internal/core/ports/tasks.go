// internal/core/ports/tasks.go
package ports

import "context"

// TaskEnqueuer schedules background work. Enqueueing is best-effort: callers
// log failures but never let them abort the foreground operation.
type TaskEnqueuer interface {
	// EnqueueReconcileSold schedules a pass that re-derives article sold status
	// from the sales ledger.
	EnqueueReconcileSold(ctx context.Context) error
	// EnqueueCartCleanup schedules a pass that clears a stale cart.
	EnqueueCartCleanup(ctx context.Context) error
}
