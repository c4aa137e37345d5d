package service

import (
	"testing"

	"github.com/Gchahm/retell-ai-agent-builder/internal/analysis"
)

var universalFields = []string{"call_summary", "call_successful", "user_sentiment", "in_voicemail", "call_outcome"}

func TestExtractStructuredDataNormalOutcome(t *testing.T) {
	callAnalysis := map[string]any{
		"call_summary":    "Driver is on schedule.",
		"call_successful": true,
		"user_sentiment":  "Positive",
		"in_voicemail":    false,
		"custom_analysis_data": map[string]any{
			"call_outcome":     "In-Transit Update",
			"driver_status":    "Driving",
			"current_location": "I-10 near Indio, CA",
			"eta":              "Tomorrow, 8:00 AM",
		},
	}

	out := ExtractStructuredData(callAnalysis)

	if out["call_outcome"] != "In-Transit Update" {
		t.Fatalf("expected call_outcome, got %v", out["call_outcome"])
	}
	if out["call_summary"] != "Driver is on schedule." || out["call_successful"] != true {
		t.Fatalf("expected built-in fields copied, got %v", out)
	}
	for _, name := range analysis.NormalFlowFieldNames() {
		if _, ok := out[name]; !ok {
			t.Fatalf("expected normal field %q present", name)
		}
	}
	for _, name := range analysis.EmergencyFlowFieldNames() {
		if _, ok := out[name]; ok {
			t.Fatalf("expected emergency field %q absent", name)
		}
	}
	// Missing normal fields come through as null, not dropped.
	if v, ok := out["delay_reason"]; !ok || v != nil {
		t.Fatalf("expected delay_reason present and null, got %v (present=%v)", v, ok)
	}
}

func TestExtractStructuredDataEmergencyOutcome(t *testing.T) {
	callAnalysis := map[string]any{
		"call_summary":    "Driver reported an accident.",
		"call_successful": true,
		"user_sentiment":  "Negative",
		"in_voicemail":    false,
		"custom_analysis_data": map[string]any{
			"call_outcome":       "Emergency",
			"emergency_type":     "Accident",
			"safety_status":      "Driver confirmed everyone is safe",
			"emergency_location": "I-15 North, Mile Marker 123",
			"load_secure":        true,
		},
	}

	out := ExtractStructuredData(callAnalysis)

	for _, name := range analysis.EmergencyFlowFieldNames() {
		if _, ok := out[name]; !ok {
			t.Fatalf("expected emergency field %q present", name)
		}
	}
	for _, name := range analysis.NormalFlowFieldNames() {
		if _, ok := out[name]; ok {
			t.Fatalf("expected normal field %q absent", name)
		}
	}
	if out["emergency_type"] != "Accident" || out["load_secure"] != true {
		t.Fatalf("expected emergency values copied, got %v", out)
	}
	for _, name := range universalFields {
		if _, ok := out[name]; !ok {
			t.Fatalf("expected universal field %q present", name)
		}
	}
}

func TestExtractStructuredDataOutcomeMatchIsExact(t *testing.T) {
	out := ExtractStructuredData(map[string]any{
		"custom_analysis_data": map[string]any{"call_outcome": "emergency"},
	})
	// Lowercase outcome is not the Emergency branch.
	if _, ok := out["emergency_type"]; ok {
		t.Fatalf("expected case-sensitive outcome match")
	}
	if _, ok := out["driver_status"]; !ok {
		t.Fatalf("expected normal branch for non-matching outcome")
	}
}

func TestExtractStructuredDataEmptyAnalysis(t *testing.T) {
	out := ExtractStructuredData(nil)

	for _, name := range universalFields {
		if v, ok := out[name]; !ok || v != nil {
			t.Fatalf("expected universal field %q present and null", name)
		}
	}
	for _, name := range analysis.NormalFlowFieldNames() {
		if v, ok := out[name]; !ok || v != nil {
			t.Fatalf("expected normal field %q present and null", name)
		}
	}
}
