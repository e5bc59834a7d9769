package orders

import "errors"

// Domain errors for order store operations.
var (
	ErrNotFound  = errors.New("order not found")
	ErrDuplicate = errors.New("order already exists")
	// ErrMalformed marks stored input data that cannot be decoded: an
	// unparseable extracted_rx payload or an unknown tracing quality
	// grade. Callers treat it as an input-data failure of the order, not
	// an infrastructure error.
	ErrMalformed = errors.New("order input data malformed")
)
