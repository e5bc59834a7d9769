package validations

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/acuity-lab/acuity/internal/events"
	"github.com/acuity-lab/acuity/internal/issues"
	"github.com/acuity-lab/acuity/internal/orders"
	"github.com/acuity-lab/acuity/internal/triage"
	"github.com/acuity-lab/acuity/pkg/pagination"
	"github.com/acuity-lab/acuity/pkg/query"
	"github.com/acuity-lab/acuity/pkg/repository"
)

type repo struct {
	db           *sql.DB
	orders       orders.System
	cfg          EngineConfig
	orderTimeout time.Duration
	workers      int
	logger       *slog.Logger
	pagination   pagination.Config
}

// New creates a validation repository implementing the System interface.
func New(
	db *sql.DB,
	orderStore orders.System,
	cfg EngineConfig,
	orderTimeout time.Duration,
	workers int,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:           db,
		orders:       orderStore,
		cfg:          cfg,
		orderTimeout: orderTimeout,
		workers:      workers,
		logger:       logger.With("system", "validations"),
		pagination:   pagination,
	}
}

func (r *repo) ValidateOrder(ctx context.Context, orderID uuid.UUID) (*Validation, error) {
	vctx, cancel := context.WithTimeout(ctx, r.orderTimeout)
	defer cancel()

	bundle, err := r.orders.FindBundle(vctx, orderID)
	switch {
	case err == nil:
		// fetched within budget
	case errors.Is(err, context.DeadlineExceeded):
		return r.persistTimeout(ctx, orderID)
	case errors.Is(err, orders.ErrMalformed):
		return r.persistMalformed(ctx, orderID, err)
	default:
		return nil, fmt.Errorf("fetch bundle for %s: %w", orderID, err)
	}

	outcome := Evaluate(bundle, r.cfg)

	v, err := r.persist(ctx, bundle.Order, outcome)
	if err != nil {
		return nil, err
	}

	r.logger.Info("order validated",
		"order_id", orderID,
		"rx_version", v.RxVersion,
		"valid", v.IsValid,
		"confidence", v.Confidence,
		"complexity", v.Complexity,
		"queue", v.Queue,
		"auto_approved", v.AutoApproved,
	)
	return v, nil
}

func (r *repo) ValidateBatch(ctx context.Context, limit int) (BatchStats, error) {
	ids, err := r.orders.ListPending(ctx, limit)
	if err != nil {
		return BatchStats{}, fmt.Errorf("list pending orders: %w", err)
	}

	stats := runBatch(ctx, ids, r.workers, func(ctx context.Context, id uuid.UUID) (*Validation, error) {
		v, err := r.ValidateOrder(ctx, id)
		if err != nil {
			r.logger.Error("order validation failed", "order_id", id, "error", err)
		}
		return v, err
	})

	r.logger.Info("batch sweep complete",
		"pending", len(ids),
		"processed", stats.Processed,
		"auto_approved", stats.AutoApproved,
		"needs_review", stats.NeedsReview,
		"errors", stats.Errors,
	)
	return stats, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Validation, error) {
	q := fmt.Sprintf("SELECT %s FROM validations WHERE id = $1", validationColumns)

	v, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanValidation)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &v, nil
}

func (r *repo) FindLatest(ctx context.Context, orderID uuid.UUID) (*Validation, error) {
	q := fmt.Sprintf(`
		SELECT %s FROM validations
		WHERE order_id = $1
		ORDER BY rx_version DESC, created_at DESC
		LIMIT 1`, validationColumns)

	v, err := repository.QueryOne(ctx, r.db, q, []any{orderID}, scanValidation)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &v, nil
}

func (r *repo) History(ctx context.Context, orderID uuid.UUID) ([]Validation, error) {
	q := fmt.Sprintf(`
		SELECT %s FROM validations
		WHERE order_id = $1
		ORDER BY rx_version DESC, created_at DESC`, validationColumns)

	list, err := repository.QueryMany(ctx, r.db, q, []any{orderID}, scanValidation)
	if err != nil {
		return nil, fmt.Errorf("validation history for %s: %w", orderID, err)
	}
	return list, nil
}

func (r *repo) ListByQueue(
	ctx context.Context,
	queue triage.Queue,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[OrderSummary], error) {
	if !queue.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQueue, queue)
	}

	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(queueProjection, queueDefaultSort).
		WhereEquals("Queue", queue).
		WhereSearch(page.Search, "Reference", "Reasoning")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count queue %s: %w", queue, err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanSummary)
	if err != nil {
		return nil, fmt.Errorf("query queue %s: %w", queue, err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

// persist writes the validation row, the order status transition, and
// the outbox event in a single transaction. The insert is append-only:
// a second validation of the same prescription version maps to
// ErrDuplicate, and a version bump during validation maps to
// ErrStaleOrder and rolls everything back.
func (r *repo) persist(ctx context.Context, order orders.Order, outcome Outcome) (*Validation, error) {
	factorsJSON, err := json.Marshal(outcome.Complexity.Factors)
	if err != nil {
		return nil, fmt.Errorf("marshal factors: %w", err)
	}

	issuesJSON, err := json.Marshal(outcome.Issues)
	if err != nil {
		return nil, fmt.Errorf("marshal issues: %w", err)
	}

	insertQ := fmt.Sprintf(`
		INSERT INTO validations(
			id, order_id, rx_version, is_valid, confidence, complexity,
			factors, issues, queue, auto_approved, reasoning
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING %s`, validationColumns)

	insertArgs := []any{
		uuid.New(),
		order.ID,
		order.RxVersion,
		outcome.IsValid,
		outcome.Confidence,
		outcome.Complexity.Value,
		factorsJSON,
		issuesJSON,
		outcome.Decision.Queue,
		outcome.Decision.AutoApproved,
		outcome.Reasoning,
	}

	criticals, warnings := issues.Summaries(outcome.Issues)

	v, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Validation, error) {
		val, err := repository.QueryOne(ctx, tx, insertQ, insertArgs, scanValidation)
		if err != nil {
			return Validation{}, repository.MapError(err, ErrNotFound, ErrDuplicate)
		}

		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2 AND rx_version = $3",
			status(outcome), order.ID, order.RxVersion,
		); err != nil {
			return Validation{}, fmt.Errorf("%w: %s", ErrStaleOrder, order.ID)
		}

		payload := events.NewOrderValidated(
			order.ID,
			order.TenantID,
			outcome.IsValid,
			criticals,
			warnings,
			outcome.Complexity.Value,
			outcome.Decision,
			val.CreatedAt,
		)

		if err := events.Enqueue(ctx, tx, payload); err != nil {
			return Validation{}, err
		}

		return val, nil
	})

	if err != nil {
		return nil, err
	}
	return &v, nil
}

// persistMalformed records the fail-safe outcome for an order whose
// stored inputs could not be decoded, so the order lands in the engineer
// queue instead of staying pending for every later sweep. The decode
// failure is still reported as an error so batch stats count it.
func (r *repo) persistMalformed(ctx context.Context, orderID uuid.UUID, cause error) (*Validation, error) {
	order, err := r.orders.Find(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("fetch order %s: %w", orderID, err)
	}

	outcome := MalformedOutcome("stored inputs could not be decoded")
	if _, err := r.persist(ctx, *order, outcome); err != nil {
		r.logger.Error("persist malformed-input result failed", "order_id", orderID, "error", err)
	}

	r.logger.Error("order input data malformed", "order_id", orderID, "error", cause)
	return nil, fmt.Errorf("validate order %s: %w", orderID, cause)
}

// persistTimeout records the fail-safe outcome for an order whose
// validation exceeded its budget, then reports it as an error so batch
// stats count it.
func (r *repo) persistTimeout(ctx context.Context, orderID uuid.UUID) (*Validation, error) {
	order, err := r.orders.Find(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: order %s", ErrTimeout, orderID)
	}

	outcome := TimeoutOutcome(r.orderTimeout.String())
	if _, err := r.persist(ctx, *order, outcome); err != nil {
		r.logger.Error("persist timeout result failed", "order_id", orderID, "error", err)
	}

	r.logger.Error("order validation timed out",
		"order_id", orderID,
		"budget", r.orderTimeout,
	)
	return nil, fmt.Errorf("%w: order %s after %s", ErrTimeout, orderID, r.orderTimeout)
}
