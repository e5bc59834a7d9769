package tracings

import "strings"

// Thresholds the rule table compares against.
const (
	minPointCount   = 50
	minBMeasurement = 25.0
	maxSphere       = 6.0
	maxCylinder     = 2.0
	maxBaseCurve    = 8.0
)

type rule struct {
	name        string
	weight      int
	description string
	fires       func(FrameGeometry, LensPower) bool
}

// rules is evaluated in order; the order is part of the contract because
// the fired-factor trace and reasoning string preserve it. The weights sum
// to 150, so a maximally difficult job clamps at 100.
var rules = []rule{
	{
		name:        "poor_tracing",
		weight:      30,
		description: "tracing quality poor or insufficient points",
		fires: func(g FrameGeometry, _ LensPower) bool {
			return g.Quality == QualityPoor || g.PointCount < minPointCount
		},
	},
	{
		name:        "wrap_frame",
		weight:      25,
		description: "wrap frame requires compensated lens design",
		fires: func(g FrameGeometry, _ LensPower) bool {
			return g.WrapFrame
		},
	},
	{
		name:        "narrow_b",
		weight:      20,
		description: "B measurement under 25mm limits lens placement",
		fires: func(g FrameGeometry, _ LensPower) bool {
			return g.BMeasurementMm < minBMeasurement
		},
	},
	{
		name:        "high_sphere",
		weight:      15,
		description: "sphere power above 6.00D",
		fires: func(_ FrameGeometry, p LensPower) bool {
			return abs(p.SphereMax) > maxSphere
		},
	},
	{
		name:        "high_cylinder",
		weight:      10,
		description: "cylinder power above 2.00D",
		fires: func(_ FrameGeometry, p LensPower) bool {
			return abs(p.CylinderMax) > maxCylinder
		},
	},
	{
		name:        "prism",
		weight:      20,
		description: "prism correction present",
		fires: func(_ FrameGeometry, p LensPower) bool {
			return p.HasPrism
		},
	},
	{
		name:        "steep_base_curve",
		weight:      30,
		description: "base curve above 8",
		fires: func(g FrameGeometry, _ LensPower) bool {
			return g.BaseCurve > maxBaseCurve
		},
	},
}

// Analyze evaluates the rule table against the geometry and power and
// returns the clamped score with the fired factors in evaluation order.
// It is pure: identical input yields an identical score and trace, and
// firing any additional rule can only raise the value.
func Analyze(geometry FrameGeometry, power LensPower) Score {
	total := 0
	factors := make([]Factor, 0, len(rules))

	for _, r := range rules {
		if !r.fires(geometry, power) {
			continue
		}
		total += r.weight
		factors = append(factors, Factor{
			Name:        r.name,
			Weight:      r.weight,
			Description: r.description,
		})
	}

	return Score{Value: clamp(total), Factors: factors}
}

// Reasoning joins the fired factors' descriptions in evaluation order.
func (s Score) Reasoning() string {
	parts := make([]string, 0, len(s.Factors))
	for _, f := range s.Factors {
		parts = append(parts, f.Description)
	}
	return strings.Join(parts, "; ")
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

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
