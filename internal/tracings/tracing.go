// Package tracings implements frame tracing types and the manufacturing
// complexity analyzer for Acuity. The analyzer folds a fixed, ordered rule
// table over frame geometry and prescription power, producing a clamped
// 0-100 score with an auditable trace of the factors that fired.
package tracings

// Quality grades how cleanly a frame tracing was captured.
type Quality string

const (
	QualityGood Quality = "good"
	QualityFair Quality = "fair"
	QualityPoor Quality = "poor"
)

// Valid reports whether q is one of the known quality grades.
func (q Quality) Valid() bool {
	switch q {
	case QualityGood, QualityFair, QualityPoor:
		return true
	}
	return false
}

// FrameGeometry is the structured output of the external tracing parser:
// the geometric properties of the frame relevant to manufacturability.
type FrameGeometry struct {
	WrapFrame      bool    `json:"wrap_frame"`
	BMeasurementMm float64 `json:"b_measurement_mm"`
	BaseCurve      float64 `json:"base_curve"`
	PointCount     int     `json:"point_count"`
	Quality        Quality `json:"quality"`
}

// LensPower summarizes the prescription strength aspects that affect
// manufacturing difficulty.
type LensPower struct {
	SphereMax   float64 `json:"sphere_max"`
	CylinderMax float64 `json:"cylinder_max"`
	HasPrism    bool    `json:"has_prism"`
}

// Factor records one fired complexity rule: its name, the weight it
// contributed, and a human-readable description.
type Factor struct {
	Name        string `json:"name"`
	Weight      int    `json:"weight"`
	Description string `json:"description"`
}

// Score is a clamped 0-100 manufacturing difficulty value together with
// the ordered list of factors that produced it.
type Score struct {
	Value   int      `json:"value"`
	Factors []Factor `json:"factors"`
}
