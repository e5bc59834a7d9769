// Package events defines the privacy-filtered event payloads Acuity
// publishes and the transactional outbox they are staged in. Payloads
// carry issue summaries and buckets, never raw prescription values; the
// act of publishing is left to an external dispatcher.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/acuity-lab/acuity/internal/triage"
)

// EventOrderValidated is the event name for validation outcomes.
const EventOrderValidated = "order.validated"

// Bucket coarsens a complexity score for consumers that only need a
// rough difficulty grade.
type Bucket string

const (
	BucketSimple   Bucket = "simple"
	BucketModerate Bucket = "moderate"
	BucketComplex  Bucket = "complex"
)

// BucketFor maps a complexity score onto its bucket, aligned with the
// routing thresholds: under 30 simple, 30-60 moderate, above 60 complex.
func BucketFor(complexity int) Bucket {
	switch {
	case complexity < triage.AutoComplexityMax:
		return BucketSimple
	case complexity <= triage.TechComplexityMax:
		return BucketModerate
	default:
		return BucketComplex
	}
}

// OrderValidated is the summary payload published after an order is
// validated. Errors and Warnings hold issue summary strings only.
type OrderValidated struct {
	Event            string       `json:"event"`
	OrderID          uuid.UUID    `json:"order_id"`
	TenantID         string       `json:"tenant_id"`
	Valid            bool         `json:"valid"`
	Errors           []string     `json:"errors"`
	Warnings         []string     `json:"warnings"`
	ComplexityBucket Bucket       `json:"complexity_bucket"`
	SuggestedQueue   triage.Queue `json:"suggested_queue"`
	AutoApproved     bool         `json:"auto_approved"`
	Timestamp        time.Time    `json:"timestamp"`
}

// NewOrderValidated assembles the order.validated payload.
func NewOrderValidated(
	orderID uuid.UUID,
	tenantID string,
	valid bool,
	errs, warnings []string,
	complexity int,
	decision triage.Decision,
	timestamp time.Time,
) OrderValidated {
	if errs == nil {
		errs = []string{}
	}
	if warnings == nil {
		warnings = []string{}
	}

	return OrderValidated{
		Event:            EventOrderValidated,
		OrderID:          orderID,
		TenantID:         tenantID,
		Valid:            valid,
		Errors:           errs,
		Warnings:         warnings,
		ComplexityBucket: BucketFor(complexity),
		SuggestedQueue:   decision.Queue,
		AutoApproved:     decision.AutoApproved,
		Timestamp:        timestamp,
	}
}
