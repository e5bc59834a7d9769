package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/acuity-lab/acuity/internal/prescriptions"
	"github.com/acuity-lab/acuity/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates an order store adapter implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "orders"),
	}
}

const orderColumns = "id, reference, tenant_id, status, rx_version, created_at, updated_at"

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Order, error) {
	q := fmt.Sprintf("SELECT %s FROM orders WHERE id = $1", orderColumns)

	o, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanOrder)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &o, nil
}

func (r *repo) FindBundle(ctx context.Context, id uuid.UUID) (*Bundle, error) {
	order, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	bundle := &Bundle{Order: *order}

	rx, hasPrism, err := r.findPrescription(ctx, id, order.RxVersion)
	if err != nil {
		return nil, fmt.Errorf("find prescription: %w", err)
	}
	bundle.StoredRx = rx
	bundle.HasPrism = hasPrism

	tracing, err := r.findTracing(ctx, id, order.RxVersion)
	if err != nil {
		return nil, fmt.Errorf("find tracing: %w", err)
	}
	bundle.Tracing = tracing

	return bundle, nil
}

func (r *repo) ListPending(ctx context.Context, limit int) ([]uuid.UUID, error) {
	q := `
		SELECT id FROM orders
		WHERE status = $1
		ORDER BY updated_at ASC
		LIMIT $2`

	ids, err := repository.QueryMany(ctx, r.db, q, []any{StatusPendingValidation, limit}, scanID)
	if err != nil {
		return nil, fmt.Errorf("list pending orders: %w", err)
	}
	return ids, nil
}

func (r *repo) findPrescription(ctx context.Context, id uuid.UUID, version int) (*prescriptions.Prescription, bool, error) {
	q := `
		SELECT od_sphere, od_cylinder, od_axis, od_add,
			   os_sphere, os_cylinder, os_axis, os_add,
			   pd, has_prism
		FROM order_prescriptions
		WHERE order_id = $1 AND rx_version = $2`

	row, err := repository.QueryOne(ctx, r.db, q, []any{id, version}, scanPrescription)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &row.rx, row.hasPrism, nil
}

func (r *repo) findTracing(ctx context.Context, id uuid.UUID, version int) (*Tracing, error) {
	q := `
		SELECT wrap_frame, b_measurement_mm, base_curve, point_count,
			   quality, extracted_rx
		FROM order_tracings
		WHERE order_id = $1 AND rx_version = $2`

	t, err := repository.QueryOne(ctx, r.db, q, []any{id, version}, scanTracing)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
