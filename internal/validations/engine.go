package validations

import (
	"fmt"
	"strings"

	"github.com/acuity-lab/acuity/internal/issues"
	"github.com/acuity-lab/acuity/internal/orders"
	"github.com/acuity-lab/acuity/internal/prescriptions"
	"github.com/acuity-lab/acuity/internal/tracings"
	"github.com/acuity-lab/acuity/internal/triage"
)

// EngineConfig carries the tunable constants of the validation pipeline.
type EngineConfig struct {
	Tolerances prescriptions.Tolerances
	Penalties  triage.Penalties
}

// DefaultEngineConfig returns the calibrated defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Tolerances: prescriptions.DefaultTolerances(),
		Penalties:  triage.DefaultPenalties(),
	}
}

// Outcome is the result of evaluating one input bundle: everything a
// Validation record holds except identity and timestamps. Evaluate never
// re-derives a value a later stage already computed.
type Outcome struct {
	IsValid    bool
	Confidence int
	Complexity tracings.Score
	Issues     issues.List
	Decision   triage.Decision
	Reasoning  string
}

// Evaluate runs the full pipeline over an immutable input bundle:
// prescription comparison and frame analysis first, then confidence
// estimation over both outputs, then the routing decision. It is pure
// and deterministic; identical bundles produce identical outcomes.
//
// A bundle missing its stored prescription or tracing is an input-data
// failure: the outcome carries a critical InsufficientData issue and is
// fail-safe routed to the engineer queue.
func Evaluate(bundle *orders.Bundle, cfg EngineConfig) Outcome {
	if bundle.StoredRx == nil {
		return failSafe(issues.MissingInput("prescription", "no stored prescription for current version"))
	}
	if bundle.Tracing == nil {
		return failSafe(issues.MissingInput("tracing", "no parsed tracing for current version"))
	}

	found := issues.List(prescriptions.Compare(*bundle.StoredRx, bundle.Tracing.ExtractedRx, cfg.Tolerances))

	score := tracings.Analyze(bundle.Tracing.Geometry, tracings.LensPower{
		SphereMax:   bundle.StoredRx.MaxSphere(),
		CylinderMax: bundle.StoredRx.MaxCylinder(),
		HasPrism:    bundle.HasPrism,
	})

	// Complexity influences confidence through the score penalty, not
	// through the per-flag warning deduction, so the estimate is taken
	// before the factor flags join the issue list.
	confidence := triage.Confidence(found, score.Value, cfg.Penalties)

	for _, f := range score.Factors {
		found = append(found, issues.FrameComplexityFlag{
			Factor:      f.Name,
			Description: f.Description,
		})
	}

	isValid := !issues.HasCritical(found)
	decision := triage.Route(isValid, !isValid, score.Value, confidence)

	return Outcome{
		IsValid:    isValid,
		Confidence: confidence,
		Complexity: score,
		Issues:     found,
		Decision:   decision,
		Reasoning:  buildReasoning(found, score.Value, confidence),
	}
}

// TimeoutOutcome is the fail-safe outcome recorded when a single-order
// validation exceeds its time budget: never auto-approved, always routed
// to the engineer queue.
func TimeoutOutcome(budget string) Outcome {
	return failSafe(issues.MissingInput("validation", fmt.Sprintf("timed out after %s", budget)))
}

// MalformedOutcome is the fail-safe outcome recorded when an order's
// stored inputs cannot be decoded. Like a timeout, it is never
// auto-approved and always routes to the engineer queue.
func MalformedOutcome(reason string) Outcome {
	return failSafe(issues.MissingInput("order data", reason))
}

func failSafe(issue issues.InsufficientData) Outcome {
	found := issues.List{issue}
	return Outcome{
		IsValid:    false,
		Confidence: 0,
		Complexity: tracings.Score{Factors: []tracings.Factor{}},
		Issues:     found,
		Decision:   triage.Decision{Queue: triage.QueueEngineer},
		Reasoning:  buildReasoning(found, 0, 0),
	}
}

func buildReasoning(found issues.List, complexity, confidence int) string {
	parts := make([]string, 0, len(found)+1)
	for _, i := range found {
		parts = append(parts, i.Summary())
	}
	if len(parts) == 0 {
		parts = append(parts, "all fields within tolerance")
	}

	parts = append(parts, fmt.Sprintf("complexity %d/100, confidence %d/100", complexity, confidence))
	return strings.Join(parts, "; ")
}

// status maps an outcome onto the order's terminal status for this
// prescription version.
func status(o Outcome) orders.Status {
	switch {
	case o.Decision.AutoApproved:
		return orders.StatusValidAutoApproved
	case o.IsValid:
		return orders.StatusValidNeedsReview
	default:
		return orders.StatusInvalidNeedsReview
	}
}
