package orders

import (
	"context"

	"github.com/google/uuid"
)

// System defines the order store contract the validation engine consumes.
type System interface {
	// Find returns the order record by ID.
	Find(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindBundle returns the validation input snapshot for the order at
	// its current prescription version. Missing prescription or tracing
	// inputs yield a Bundle with nil fields, not an error.
	FindBundle(ctx context.Context, id uuid.UUID) (*Bundle, error)
	// ListPending returns up to limit order IDs still awaiting
	// validation, oldest first.
	ListPending(ctx context.Context, limit int) ([]uuid.UUID, error)
}
