package validations

import (
	"encoding/json"
	"fmt"

	"github.com/acuity-lab/acuity/internal/issues"
	"github.com/acuity-lab/acuity/internal/tracings"
	"github.com/acuity-lab/acuity/pkg/query"
	"github.com/acuity-lab/acuity/pkg/repository"
)

// queueProjection reads the order_queue view: orders joined with their
// current-version validation.
var queueProjection = query.
	NewProjectionMap("public", "order_queue", "q").
	Project("order_id", "OrderID").
	Project("reference", "Reference").
	Project("tenant_id", "TenantID").
	Project("queue", "Queue").
	Project("confidence", "Confidence").
	Project("complexity", "Complexity").
	Project("is_valid", "IsValid").
	Project("auto_approved", "AutoApproved").
	Project("reasoning", "Reasoning").
	Project("validated_at", "ValidatedAt")

var queueDefaultSort = query.SortField{
	Field:      "ValidatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for queue listings.
// Nil fields are ignored.
type Filters struct {
	TenantID     *string `json:"tenant_id,omitempty"`
	AutoApproved *bool   `json:"auto_approved,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("TenantID", f.TenantID).
		WhereEquals("AutoApproved", f.AutoApproved)
}

const validationColumns = `id, order_id, rx_version, is_valid, confidence,
	complexity, factors, issues, queue, auto_approved, reasoning, created_at`

func scanValidation(s repository.Scanner) (Validation, error) {
	var v Validation
	var factorsRaw, issuesRaw []byte

	err := s.Scan(
		&v.ID,
		&v.OrderID,
		&v.RxVersion,
		&v.IsValid,
		&v.Confidence,
		&v.Complexity,
		&factorsRaw,
		&issuesRaw,
		&v.Queue,
		&v.AutoApproved,
		&v.Reasoning,
		&v.CreatedAt,
	)
	if err != nil {
		return v, err
	}

	if len(factorsRaw) > 0 {
		if err := json.Unmarshal(factorsRaw, &v.Factors); err != nil {
			return v, fmt.Errorf("unmarshal factors: %w", err)
		}
	}
	if v.Factors == nil {
		v.Factors = []tracings.Factor{}
	}

	if len(issuesRaw) > 0 {
		if err := json.Unmarshal(issuesRaw, &v.Issues); err != nil {
			return v, fmt.Errorf("unmarshal issues: %w", err)
		}
	}
	if v.Issues == nil {
		v.Issues = issues.List{}
	}

	return v, nil
}

func scanSummary(s repository.Scanner) (OrderSummary, error) {
	var o OrderSummary
	err := s.Scan(
		&o.OrderID,
		&o.Reference,
		&o.TenantID,
		&o.Queue,
		&o.Confidence,
		&o.Complexity,
		&o.IsValid,
		&o.AutoApproved,
		&o.Reasoning,
		&o.ValidatedAt,
	)
	return o, err
}
