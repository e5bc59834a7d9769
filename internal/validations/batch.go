package validations

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// batchValidator validates a single order; the repository's
// ValidateOrder satisfies it, and tests substitute stubs.
type batchValidator func(ctx context.Context, orderID uuid.UUID) (*Validation, error)

// runBatch fans the order IDs out over a bounded worker pool and
// aggregates stats. Each order's failure is isolated: a bad order
// increments Errors and the sweep continues. Cancellation is cooperative
// and checked between orders only, so no order is left half-validated.
func runBatch(ctx context.Context, ids []uuid.UUID, workers int, validate batchValidator) BatchStats {
	var (
		mu    sync.Mutex
		stats BatchStats
	)

	var g errgroup.Group
	g.SetLimit(workers)

	for _, id := range ids {
		id := id
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			v, err := validate(ctx, id)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				stats.Errors++
				return nil
			}

			stats.Processed++
			if v.AutoApproved {
				stats.AutoApproved++
			} else {
				stats.NeedsReview++
			}
			return nil
		})
	}

	g.Wait()
	return stats
}
