package events_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/acuity-lab/acuity/internal/events"
	"github.com/acuity-lab/acuity/internal/triage"
)

func TestBucketFor(t *testing.T) {
	tests := []struct {
		complexity int
		want       events.Bucket
	}{
		{0, events.BucketSimple},
		{29, events.BucketSimple},
		{30, events.BucketModerate},
		{60, events.BucketModerate},
		{61, events.BucketComplex},
		{100, events.BucketComplex},
	}

	for _, tt := range tests {
		if got := events.BucketFor(tt.complexity); got != tt.want {
			t.Errorf("BucketFor(%d) = %q, want %q", tt.complexity, got, tt.want)
		}
	}
}

func TestNewOrderValidated(t *testing.T) {
	orderID := uuid.New()
	now := time.Now().UTC()

	payload := events.NewOrderValidated(
		orderID,
		"lab-west",
		false,
		[]string{"OD sphere mismatch 0.50 exceeds tolerance 0.12"},
		nil,
		75,
		triage.Decision{Queue: triage.QueueEngineer},
		now,
	)

	if payload.Event != events.EventOrderValidated {
		t.Errorf("Event = %q, want %q", payload.Event, events.EventOrderValidated)
	}
	if payload.ComplexityBucket != events.BucketComplex {
		t.Errorf("ComplexityBucket = %q, want %q", payload.ComplexityBucket, events.BucketComplex)
	}
	if payload.SuggestedQueue != triage.QueueEngineer || payload.AutoApproved {
		t.Errorf("decision = %q/%v, want engineer, not auto-approved", payload.SuggestedQueue, payload.AutoApproved)
	}
	if payload.Warnings == nil {
		t.Error("Warnings = nil, want empty slice")
	}
}

// Event payloads carry issue summaries and buckets only; the raw
// prescription values must never appear in the serialized payload.
func TestOrderValidatedOmitsPrescriptionValues(t *testing.T) {
	payload := events.NewOrderValidated(
		uuid.New(),
		"lab-west",
		false,
		[]string{"OD sphere mismatch 0.50 exceeds tolerance 0.12"},
		[]string{"insufficient data for OD add"},
		75,
		triage.Decision{Queue: triage.QueueEngineer},
		time.Now().UTC(),
	)

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	for _, field := range []string{"expected", "actual", "sphere\":", "complexity_score"} {
		if strings.Contains(string(data), field) {
			t.Errorf("payload leaks %q: %s", field, data)
		}
	}
	if !strings.Contains(string(data), `"complexity_bucket":"complex"`) {
		t.Errorf("payload missing complexity bucket: %s", data)
	}
}
