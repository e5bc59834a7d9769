package validations

import "errors"

// Domain errors for validation operations.
var (
	ErrNotFound  = errors.New("validation not found")
	ErrDuplicate = errors.New("validation already exists for this prescription version")
	ErrTimeout   = errors.New("validation timed out")
	// ErrStaleOrder is returned when the order's prescription version
	// changed while a validation was in flight; the result is discarded
	// and the order remains pending for the next sweep.
	ErrStaleOrder = errors.New("order changed during validation")
	// ErrInvalidQueue is returned for queue names outside the known set.
	ErrInvalidQueue = errors.New("unknown queue")
)
