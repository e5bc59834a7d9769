package tracings_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/acuity-lab/acuity/internal/tracings"
)

func simpleGeometry() tracings.FrameGeometry {
	return tracings.FrameGeometry{
		WrapFrame:      false,
		BMeasurementMm: 52,
		BaseCurve:      6,
		PointCount:     512,
		Quality:        tracings.QualityGood,
	}
}

func simplePower() tracings.LensPower {
	return tracings.LensPower{SphereMax: -2.00, CylinderMax: -0.75}
}

func TestAnalyzeSimpleJob(t *testing.T) {
	score := tracings.Analyze(simpleGeometry(), simplePower())
	if score.Value != 0 {
		t.Errorf("Value = %d, want 0", score.Value)
	}
	if len(score.Factors) != 0 {
		t.Errorf("Factors = %v, want none", score.Factors)
	}
}

func TestAnalyzeSingleFactors(t *testing.T) {
	tests := []struct {
		name     string
		geometry func(*tracings.FrameGeometry)
		power    func(*tracings.LensPower)
		factor   string
		want     int
	}{
		{
			name:     "poor quality",
			geometry: func(g *tracings.FrameGeometry) { g.Quality = tracings.QualityPoor },
			factor:   "poor_tracing",
			want:     30,
		},
		{
			name:     "too few points",
			geometry: func(g *tracings.FrameGeometry) { g.PointCount = 49 },
			factor:   "poor_tracing",
			want:     30,
		},
		{
			name:     "wrap frame",
			geometry: func(g *tracings.FrameGeometry) { g.WrapFrame = true },
			factor:   "wrap_frame",
			want:     25,
		},
		{
			name:     "narrow b measurement",
			geometry: func(g *tracings.FrameGeometry) { g.BMeasurementMm = 24.5 },
			factor:   "narrow_b",
			want:     20,
		},
		{
			name:   "high sphere",
			power:  func(p *tracings.LensPower) { p.SphereMax = -6.25 },
			factor: "high_sphere",
			want:   15,
		},
		{
			name:   "high cylinder",
			power:  func(p *tracings.LensPower) { p.CylinderMax = -2.25 },
			factor: "high_cylinder",
			want:   10,
		},
		{
			name:   "prism",
			power:  func(p *tracings.LensPower) { p.HasPrism = true },
			factor: "prism",
			want:   20,
		},
		{
			name:     "steep base curve",
			geometry: func(g *tracings.FrameGeometry) { g.BaseCurve = 8.5 },
			factor:   "steep_base_curve",
			want:     30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geometry := simpleGeometry()
			power := simplePower()
			if tt.geometry != nil {
				tt.geometry(&geometry)
			}
			if tt.power != nil {
				tt.power(&power)
			}

			score := tracings.Analyze(geometry, power)
			if score.Value != tt.want {
				t.Errorf("Value = %d, want %d", score.Value, tt.want)
			}
			if len(score.Factors) != 1 || score.Factors[0].Name != tt.factor {
				t.Errorf("Factors = %v, want single %q", score.Factors, tt.factor)
			}
		})
	}
}

func TestAnalyzeThresholdBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		geometry func(*tracings.FrameGeometry)
		power    func(*tracings.LensPower)
	}{
		{
			name:     "point count at minimum",
			geometry: func(g *tracings.FrameGeometry) { g.PointCount = 50 },
		},
		{
			name:     "b measurement at minimum",
			geometry: func(g *tracings.FrameGeometry) { g.BMeasurementMm = 25 },
		},
		{
			name:  "sphere at maximum",
			power: func(p *tracings.LensPower) { p.SphereMax = -6.00 },
		},
		{
			name:  "cylinder at maximum",
			power: func(p *tracings.LensPower) { p.CylinderMax = -2.00 },
		},
		{
			name:     "base curve at maximum",
			geometry: func(g *tracings.FrameGeometry) { g.BaseCurve = 8 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geometry := simpleGeometry()
			power := simplePower()
			if tt.geometry != nil {
				tt.geometry(&geometry)
			}
			if tt.power != nil {
				tt.power(&power)
			}

			if score := tracings.Analyze(geometry, power); score.Value != 0 {
				t.Errorf("Value = %d, want 0 at threshold boundary", score.Value)
			}
		})
	}
}

func TestAnalyzeClampsAtHundred(t *testing.T) {
	geometry := tracings.FrameGeometry{
		WrapFrame:      true,
		BMeasurementMm: 22,
		BaseCurve:      9,
		PointCount:     40,
		Quality:        tracings.QualityPoor,
	}
	power := tracings.LensPower{SphereMax: -8.50, CylinderMax: -3.00, HasPrism: true}

	score := tracings.Analyze(geometry, power)
	if score.Value != 100 {
		t.Errorf("Value = %d, want 100 after clamp", score.Value)
	}
	if len(score.Factors) != 7 {
		t.Errorf("fired %d factors, want all 7", len(score.Factors))
	}
}

func TestAnalyzeMonotonic(t *testing.T) {
	geometry := simpleGeometry()
	power := simplePower()
	base := tracings.Analyze(geometry, power)

	geometry.WrapFrame = true
	withWrap := tracings.Analyze(geometry, power)
	if withWrap.Value <= base.Value {
		t.Errorf("firing wrap_frame lowered score: %d -> %d", base.Value, withWrap.Value)
	}

	power.HasPrism = true
	withPrism := tracings.Analyze(geometry, power)
	if withPrism.Value <= withWrap.Value {
		t.Errorf("firing prism lowered score: %d -> %d", withWrap.Value, withPrism.Value)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	geometry := tracings.FrameGeometry{
		WrapFrame:      true,
		BMeasurementMm: 23,
		BaseCurve:      6,
		PointCount:     200,
		Quality:        tracings.QualityFair,
	}
	power := tracings.LensPower{SphereMax: -7.00, CylinderMax: -1.00}

	first := tracings.Analyze(geometry, power)
	for i := 0; i < 10; i++ {
		if diff := cmp.Diff(first, tracings.Analyze(geometry, power)); diff != "" {
			t.Fatalf("Analyze() not deterministic (-want +got):\n%s", diff)
		}
	}

	names := make([]string, 0, len(first.Factors))
	for _, f := range first.Factors {
		names = append(names, f.Name)
	}
	want := []string{"wrap_frame", "narrow_b", "high_sphere"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("factor order (-want +got):\n%s", diff)
	}
}

func TestScoreReasoning(t *testing.T) {
	score := tracings.Score{Factors: []tracings.Factor{
		{Name: "wrap_frame", Weight: 25, Description: "wrap frame requires compensated lens design"},
		{Name: "prism", Weight: 20, Description: "prism correction present"},
	}}

	want := "wrap frame requires compensated lens design; prism correction present"
	if got := score.Reasoning(); got != want {
		t.Errorf("Reasoning() = %q, want %q", got, want)
	}
}
