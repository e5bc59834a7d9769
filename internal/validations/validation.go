// Package validations implements the validation domain for Acuity. It
// runs the comparison, complexity, confidence, and routing stages over an
// order's input bundle, assembles the immutable validation record,
// persists it once per prescription version, and drives batch sweeps over
// pending orders.
package validations

import (
	"time"

	"github.com/google/uuid"

	"github.com/acuity-lab/acuity/internal/issues"
	"github.com/acuity-lab/acuity/internal/tracings"
	"github.com/acuity-lab/acuity/internal/triage"
)

// Validation is the stored, immutable outcome of validating one order at
// one prescription version. A later edit of the order produces a new row;
// existing rows are never updated.
type Validation struct {
	ID           uuid.UUID         `json:"id"`
	OrderID      uuid.UUID         `json:"order_id"`
	RxVersion    int               `json:"rx_version"`
	IsValid      bool              `json:"is_valid"`
	Confidence   int               `json:"confidence"`
	Complexity   int               `json:"complexity"`
	Factors      []tracings.Factor `json:"factors"`
	Issues       issues.List       `json:"issues"`
	Queue        triage.Queue      `json:"queue"`
	AutoApproved bool              `json:"auto_approved"`
	Reasoning    string            `json:"reasoning"`
	CreatedAt    time.Time         `json:"created_at"`
}

// OrderSummary is a queue listing row for external review UIs: the order
// joined with its current-version validation.
type OrderSummary struct {
	OrderID      uuid.UUID    `json:"order_id"`
	Reference    string       `json:"reference"`
	TenantID     string       `json:"tenant_id"`
	Queue        triage.Queue `json:"queue"`
	Confidence   int          `json:"confidence"`
	Complexity   int          `json:"complexity"`
	IsValid      bool         `json:"is_valid"`
	AutoApproved bool         `json:"auto_approved"`
	Reasoning    string       `json:"reasoning"`
	ValidatedAt  time.Time    `json:"validated_at"`
}

// BatchStats reports the outcome of a batch sweep. Processed counts
// orders validated without error; Errors counts isolated per-order
// failures (malformed input, timeout). AutoApproved and NeedsReview
// partition Processed by routing outcome.
type BatchStats struct {
	Processed    int `json:"processed"`
	AutoApproved int `json:"auto_approved"`
	NeedsReview  int `json:"needs_review"`
	Errors       int `json:"errors"`
}
