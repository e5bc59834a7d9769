// Package prescriptions implements prescription types and the tolerance
// comparator for Acuity. Compare checks a stored prescription against the
// values extracted from an order's tracing and emits typed issues for
// every field that drifts outside tolerance or cannot be compared.
package prescriptions

// Eye identifies which eye a prescription value applies to, using the
// standard OD (right) / OS (left) abbreviations.
type Eye string

const (
	EyeOD Eye = "OD"
	EyeOS Eye = "OS"
)

// EyeRx holds the per-eye prescription components in signed diopters
// (sphere, cylinder, add) and degrees (axis). Nil fields are absent:
// not prescribed or not extracted.
type EyeRx struct {
	Sphere   *float64 `json:"sphere,omitempty"`
	Cylinder *float64 `json:"cylinder,omitempty"`
	Axis     *float64 `json:"axis,omitempty"`
	Add      *float64 `json:"add,omitempty"`
}

// Prescription is a complete two-eye prescription with an overall
// pupillary distance in millimeters.
type Prescription struct {
	OD EyeRx    `json:"od"`
	OS EyeRx    `json:"os"`
	PD *float64 `json:"pd,omitempty"`
}

// Eye returns the per-eye values for the given eye.
func (p Prescription) Eye(eye Eye) EyeRx {
	if eye == EyeOS {
		return p.OS
	}
	return p.OD
}

// MaxSphere returns the largest absolute sphere magnitude across both
// eyes, or 0 if no sphere is present.
func (p Prescription) MaxSphere() float64 {
	return maxAbs(p.OD.Sphere, p.OS.Sphere)
}

// MaxCylinder returns the largest absolute cylinder magnitude across both
// eyes, or 0 if no cylinder is present.
func (p Prescription) MaxCylinder() float64 {
	return maxAbs(p.OD.Cylinder, p.OS.Cylinder)
}

func maxAbs(values ...*float64) float64 {
	m := 0.0
	for _, v := range values {
		if v == nil {
			continue
		}
		a := *v
		if a < 0 {
			a = -a
		}
		if a > m {
			m = a
		}
	}
	return m
}
