// Package orders implements the order store adapter for Acuity. The
// validation engine treats the order store as a collaborator: this
// package fetches the immutable input bundle (stored prescription plus
// parsed tracing snapshot at the order's current prescription version)
// and lists orders still awaiting validation.
package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/acuity-lab/acuity/internal/prescriptions"
	"github.com/acuity-lab/acuity/internal/tracings"
)

// Status tracks an order's position in the validation state machine.
// Validation statuses are terminal per prescription version; editing an
// order returns it to StatusPendingValidation with a bumped version.
type Status string

const (
	StatusPendingValidation  Status = "pending_validation"
	StatusValidAutoApproved  Status = "valid_auto_approved"
	StatusValidNeedsReview   Status = "valid_needs_review"
	StatusInvalidNeedsReview Status = "invalid_needs_review"
)

// Order is a manufacturing order registered with the lab.
type Order struct {
	ID        uuid.UUID `json:"id"`
	Reference string    `json:"reference"`
	TenantID  string    `json:"tenant_id"`
	Status    Status    `json:"status"`
	RxVersion int       `json:"rx_version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Tracing is the structured output the external tracing parser produced
// for an order: frame geometry plus the prescription values it extracted.
type Tracing struct {
	Geometry    tracings.FrameGeometry     `json:"geometry"`
	ExtractedRx prescriptions.Prescription `json:"extracted_rx"`
}

// Bundle is the immutable input snapshot a single validation runs on.
// StoredRx or Tracing being nil means the corresponding input has not
// arrived; the engine treats that as an input-data failure, not an error
// to propagate.
type Bundle struct {
	Order    Order
	StoredRx *prescriptions.Prescription
	HasPrism bool
	Tracing  *Tracing
}
