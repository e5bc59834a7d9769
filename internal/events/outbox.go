package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/acuity-lab/acuity/pkg/repository"
)

// Entry is a staged event awaiting dispatch.
type Entry struct {
	ID          uuid.UUID       `json:"id"`
	Event       string          `json:"event"`
	Payload     json.RawMessage `json:"payload"`
	CreatedAt   time.Time       `json:"created_at"`
	PublishedAt *time.Time      `json:"published_at"`
}

// Outbox stages event payloads in the database so they commit atomically
// with the validation results that produced them. An external dispatcher
// drains pending entries for at-least-once delivery.
type Outbox struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewOutbox creates an Outbox over the given connection pool.
func NewOutbox(db *sql.DB, logger *slog.Logger) *Outbox {
	return &Outbox{
		db:     db,
		logger: logger.With("system", "outbox"),
	}
}

// Enqueue stages a payload using the given executor, typically the
// transaction that writes the validation result.
func Enqueue(ctx context.Context, e repository.Executor, payload OrderValidated) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	_, err = e.ExecContext(
		ctx,
		"INSERT INTO outbox (id, event, payload) VALUES ($1, $2, $3)",
		uuid.New(), payload.Event, data,
	)
	if err != nil {
		return fmt.Errorf("enqueue event: %w", err)
	}
	return nil
}

// Pending returns up to limit unpublished entries, oldest first.
func (o *Outbox) Pending(ctx context.Context, limit int) ([]Entry, error) {
	q := `
		SELECT id, event, payload, created_at, published_at
		FROM outbox
		WHERE published_at IS NULL
		ORDER BY created_at ASC
		LIMIT $1`

	entries, err := repository.QueryMany(ctx, o.db, q, []any{limit}, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("list pending events: %w", err)
	}
	return entries, nil
}

// MarkPublished records that an entry was delivered. Marking an already
// published entry is a no-op error so dispatchers can detect races.
func (o *Outbox) MarkPublished(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(
		ctx, o.db,
		"UPDATE outbox SET published_at = NOW() WHERE id = $1 AND published_at IS NULL",
		id,
	)
	if err != nil {
		return fmt.Errorf("mark published %s: %w", id, err)
	}

	o.logger.Debug("event published", "id", id)
	return nil
}

func scanEntry(s repository.Scanner) (Entry, error) {
	var e Entry
	var payload []byte

	err := s.Scan(&e.ID, &e.Event, &payload, &e.CreatedAt, &e.PublishedAt)
	if err != nil {
		return e, err
	}

	e.Payload = json.RawMessage(payload)
	return e, nil
}
