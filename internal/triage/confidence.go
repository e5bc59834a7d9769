// Package triage implements the confidence estimator and the routing
// decision engine. Both are pure: the estimator folds issue counts and the
// complexity score into a single 0-100 confidence value, and Route maps
// (validity, complexity, confidence) onto one of three work queues.
package triage

import "github.com/acuity-lab/acuity/internal/issues"

// Penalties holds the confidence deduction constants. With the defaults,
// a clean simple order with one skipped field scores 95 and a critical
// mismatch on a difficult frame lands in the 70s.
type Penalties struct {
	// Critical is subtracted once per critical issue.
	Critical int `toml:"critical" json:"critical"`
	// Warning is subtracted once per warning issue.
	Warning int `toml:"warning" json:"warning"`
	// ComplexityBaseline is the score below which complexity costs
	// nothing.
	ComplexityBaseline int `toml:"complexity_baseline" json:"complexity_baseline"`
	// ComplexityDivisor scales the overage above the baseline; the
	// penalty is (complexity - baseline) / divisor.
	ComplexityDivisor int `toml:"complexity_divisor" json:"complexity_divisor"`
}

// DefaultPenalties returns the calibrated deduction constants.
func DefaultPenalties() Penalties {
	return Penalties{
		Critical:           15,
		Warning:            5,
		ComplexityBaseline: 60,
		ComplexityDivisor:  4,
	}
}

// Confidence estimates how certain the engine is that the order can
// proceed without human review. It starts from 100, subtracts the
// per-severity penalties for each comparator issue, subtracts the scaled
// complexity overage above the baseline, and clamps to [0,100].
func Confidence(list []issues.Issue, complexity int, p Penalties) int {
	criticals, warnings := issues.Count(list)

	value := 100
	value -= criticals * p.Critical
	value -= warnings * p.Warning

	if complexity > p.ComplexityBaseline && p.ComplexityDivisor > 0 {
		value -= (complexity - p.ComplexityBaseline) / p.ComplexityDivisor
	}

	return clamp(value)
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
