package validations

import (
	"context"

	"github.com/google/uuid"

	"github.com/acuity-lab/acuity/internal/triage"
	"github.com/acuity-lab/acuity/pkg/pagination"
)

// System defines the public contract for validation domain operations.
type System interface {
	// ValidateOrder fetches the order's input bundle, runs the engine,
	// and persists the result together with the order status transition
	// and the outbox event in one transaction. A timeout persists a
	// fail-safe engineer-routed record and returns ErrTimeout.
	ValidateOrder(ctx context.Context, orderID uuid.UUID) (*Validation, error)

	// ValidateBatch validates up to limit pending orders with a bounded
	// worker pool. Per-order failures are isolated and counted; only
	// infrastructure failures abort the sweep.
	ValidateBatch(ctx context.Context, limit int) (BatchStats, error)

	Find(ctx context.Context, id uuid.UUID) (*Validation, error)
	// FindLatest returns the newest validation for an order, spanning
	// superseded prescription versions.
	FindLatest(ctx context.Context, orderID uuid.UUID) (*Validation, error)
	// History returns all validations for an order, newest first.
	History(ctx context.Context, orderID uuid.UUID) ([]Validation, error)
	// ListByQueue returns the queue listing consumed by review UIs.
	ListByQueue(
		ctx context.Context,
		queue triage.Queue,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[OrderSummary], error)
}
