package prescriptions

import (
	"math"

	"github.com/acuity-lab/acuity/internal/issues"
)

// Tolerances holds the maximum acceptable deviation per prescription
// field. Diopter fields are in diopters, Axis in degrees, PD in
// millimeters.
type Tolerances struct {
	Sphere   float64 `toml:"sphere" json:"sphere"`
	Cylinder float64 `toml:"cylinder" json:"cylinder"`
	Axis     float64 `toml:"axis" json:"axis"`
	Add      float64 `toml:"add" json:"add"`
	PD       float64 `toml:"pd" json:"pd"`
}

// DefaultTolerances returns the lab's standard tolerances: ±0.12D on
// power fields, ±2° on axis, ±1.0mm on pupillary distance.
func DefaultTolerances() Tolerances {
	return Tolerances{
		Sphere:   0.12,
		Cylinder: 0.12,
		Axis:     2,
		Add:      0.12,
		PD:       1.0,
	}
}

const (
	fieldSphere   = "sphere"
	fieldCylinder = "cylinder"
	fieldAxis     = "axis"
	fieldAdd      = "add"
	fieldPD       = "pd"
)

// Compare checks each field of the extracted prescription against the
// stored one under the given tolerances. Power fields compare by absolute
// difference; axis compares modulo 180° so that 179° and 1° are 2° apart.
// A field present on exactly one side yields an InsufficientData warning;
// a field absent on both sides is not applicable and is skipped. Compare
// is pure and knows nothing about scores or queues.
func Compare(stored, extracted Prescription, tol Tolerances) []issues.Issue {
	found := make([]issues.Issue, 0)

	for _, eye := range []Eye{EyeOD, EyeOS} {
		s, x := stored.Eye(eye), extracted.Eye(eye)

		found = appendField(found, eye, fieldSphere, s.Sphere, x.Sphere, tol.Sphere, absDiff)
		found = appendField(found, eye, fieldCylinder, s.Cylinder, x.Cylinder, tol.Cylinder, absDiff)

		// Axis is meaningless without cylinder power on either side.
		if s.Cylinder != nil || x.Cylinder != nil {
			found = appendField(found, eye, fieldAxis, s.Axis, x.Axis, tol.Axis, axisDiff)
		}

		found = appendField(found, eye, fieldAdd, s.Add, x.Add, tol.Add, absDiff)
	}

	return appendField(found, "", fieldPD, stored.PD, extracted.PD, tol.PD, absDiff)
}

func appendField(
	found []issues.Issue,
	eye Eye,
	field string,
	stored, extracted *float64,
	tolerance float64,
	diff func(a, b float64) float64,
) []issues.Issue {
	if stored == nil && extracted == nil {
		return found
	}

	name := field
	if eye != "" {
		name = string(eye) + " " + field
	}

	if stored == nil || extracted == nil {
		return append(found, issues.MissingField(name))
	}

	// Tolerances are inclusive; the epsilon keeps a diff that is exactly
	// at tolerance from tipping over on float64 rounding.
	d := diff(*stored, *extracted)
	if d-tolerance > 1e-9 {
		return append(found, issues.PrescriptionMismatch{
			Eye:       string(eye),
			Field:     field,
			Expected:  *stored,
			Actual:    *extracted,
			Diff:      d,
			Tolerance: tolerance,
		})
	}

	return found
}

func absDiff(a, b float64) float64 {
	return math.Abs(a - b)
}

// axisDiff computes the wraparound axis difference: axis is defined
// modulo 180°, so the distance between two values is the shorter arc.
func axisDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 180)
	return math.Min(d, 180-d)
}
