package triage_test

import (
	"testing"

	"github.com/acuity-lab/acuity/internal/issues"
	"github.com/acuity-lab/acuity/internal/triage"
)

func TestConfidence(t *testing.T) {
	p := triage.DefaultPenalties()

	tests := []struct {
		name       string
		issues     []issues.Issue
		complexity int
		want       int
	}{
		{
			name:       "clean simple order",
			issues:     nil,
			complexity: 0,
			want:       100,
		},
		{
			name:       "one skipped field",
			issues:     []issues.Issue{issues.MissingField("OD add")},
			complexity: 0,
			want:       95,
		},
		{
			name: "one critical mismatch",
			issues: []issues.Issue{
				issues.PrescriptionMismatch{Eye: "OD", Field: "sphere", Diff: 0.50, Tolerance: 0.12},
			},
			complexity: 0,
			want:       85,
		},
		{
			name:       "complexity at baseline costs nothing",
			issues:     nil,
			complexity: 60,
			want:       100,
		},
		{
			name:       "complexity overage scaled",
			issues:     nil,
			complexity: 100,
			want:       90,
		},
		{
			name: "complex critical order",
			issues: []issues.Issue{
				issues.PrescriptionMismatch{Eye: "OD", Field: "sphere", Diff: 0.50, Tolerance: 0.12},
				issues.MissingField("OD add"),
			},
			complexity: 75,
			want:       77,
		},
		{
			name: "floor at zero",
			issues: []issues.Issue{
				issues.MissingInput("prescription", "no stored prescription"),
				issues.MissingInput("tracing", "no parsed tracing"),
				issues.PrescriptionMismatch{Eye: "OD", Field: "sphere"},
				issues.PrescriptionMismatch{Eye: "OS", Field: "sphere"},
				issues.PrescriptionMismatch{Eye: "OD", Field: "cylinder"},
				issues.PrescriptionMismatch{Eye: "OS", Field: "cylinder"},
				issues.PrescriptionMismatch{Field: "pd"},
			},
			complexity: 100,
			want:       0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := triage.Confidence(tt.issues, tt.complexity, p)
			if got != tt.want {
				t.Errorf("Confidence() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConfidenceRange(t *testing.T) {
	p := triage.DefaultPenalties()

	for complexity := 0; complexity <= 100; complexity += 5 {
		for criticals := 0; criticals <= 8; criticals++ {
			list := make([]issues.Issue, 0, criticals)
			for i := 0; i < criticals; i++ {
				list = append(list, issues.PrescriptionMismatch{Eye: "OD", Field: "sphere"})
			}

			got := triage.Confidence(list, complexity, p)
			if got < 0 || got > 100 {
				t.Fatalf("Confidence(criticals=%d, complexity=%d) = %d, outside [0,100]",
					criticals, complexity, got)
			}
		}
	}
}
