// Package issues defines the validation issue taxonomy for Acuity.
// Every finding the engine can raise against an order is one of a closed
// set of variants, each carrying only the fields relevant to it. Consumers
// switch on the concrete type rather than matching strings.
package issues

import "fmt"

// Severity classifies how strongly an issue should influence routing.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// Issue is the closed interface over validation findings. The unexported
// method keeps the variant set sealed to this package.
type Issue interface {
	// Severity reports whether the issue is critical or a warning.
	Severity() Severity
	// Summary returns a short human-readable description suitable for
	// reasoning strings and event payloads. It must not reproduce raw
	// prescription values beyond the field under comparison.
	Summary() string

	isIssue()
}

// PrescriptionMismatch reports a stored vs extracted prescription field
// whose difference exceeds tolerance. Always critical.
type PrescriptionMismatch struct {
	Eye       string  `json:"eye"`
	Field     string  `json:"field"`
	Expected  float64 `json:"expected"`
	Actual    float64 `json:"actual"`
	Diff      float64 `json:"diff"`
	Tolerance float64 `json:"tolerance"`
}

func (PrescriptionMismatch) isIssue() {}

func (PrescriptionMismatch) Severity() Severity { return SeverityCritical }

func (m PrescriptionMismatch) Summary() string {
	field := m.Field
	if m.Eye != "" {
		field = m.Eye + " " + m.Field
	}
	return fmt.Sprintf("%s mismatch %.2f exceeds tolerance %.2f", field, m.Diff, m.Tolerance)
}

// FrameComplexityFlag records a manufacturing-difficulty factor that fired
// during frame analysis. Always a warning; complexity itself is scored
// separately.
type FrameComplexityFlag struct {
	Factor      string `json:"factor"`
	Description string `json:"description"`
}

func (FrameComplexityFlag) isIssue() {}

func (FrameComplexityFlag) Severity() Severity { return SeverityWarning }

func (f FrameComplexityFlag) Summary() string { return f.Description }

// InsufficientData reports a field that could not be compared or an input
// that could not be obtained. Ordinary skipped comparisons are warnings;
// a missing input bundle or a validation timeout is critical.
type InsufficientData struct {
	Field  string   `json:"field"`
	Reason string   `json:"reason,omitempty"`
	Sev    Severity `json:"severity"`
}

func (InsufficientData) isIssue() {}

func (d InsufficientData) Severity() Severity {
	if d.Sev == "" {
		return SeverityWarning
	}
	return d.Sev
}

func (d InsufficientData) Summary() string {
	if d.Reason != "" {
		return fmt.Sprintf("insufficient data for %s: %s", d.Field, d.Reason)
	}
	return fmt.Sprintf("insufficient data for %s", d.Field)
}

// MissingField returns the warning-severity InsufficientData issue emitted
// when a prescription field is present on only one side of a comparison.
func MissingField(field string) InsufficientData {
	return InsufficientData{Field: field, Sev: SeverityWarning}
}

// MissingInput returns the critical-severity InsufficientData issue emitted
// when a whole input (tracing, stored prescription) is absent or a
// validation times out. Orders carrying one are fail-safe routed.
func MissingInput(field, reason string) InsufficientData {
	return InsufficientData{Field: field, Reason: reason, Sev: SeverityCritical}
}

// HasCritical reports whether any issue in the list is critical.
func HasCritical(list []Issue) bool {
	for _, i := range list {
		if i.Severity() == SeverityCritical {
			return true
		}
	}
	return false
}

// Count returns the number of critical and warning issues in the list.
func Count(list []Issue) (criticals, warnings int) {
	for _, i := range list {
		switch i.Severity() {
		case SeverityCritical:
			criticals++
		default:
			warnings++
		}
	}
	return criticals, warnings
}

// Summaries returns the issues' summary strings grouped by severity,
// preserving order within each group. Both slices are non-nil.
func Summaries(list []Issue) (criticals, warnings []string) {
	criticals = make([]string, 0)
	warnings = make([]string, 0)
	for _, i := range list {
		if i.Severity() == SeverityCritical {
			criticals = append(criticals, i.Summary())
		} else {
			warnings = append(warnings, i.Summary())
		}
	}
	return criticals, warnings
}
