package service

import (
	"github.com/Gchahm/retell-ai-agent-builder/internal/analysis"
)

// ExtractStructuredData maps Retell's call-analysis payload to the flat
// structured_data mapping stored with a call result. Built-in analysis
// fields are always emitted; the custom extraction fields branch on
// call_outcome: the Emergency outcome selects the emergency field set,
// everything else the normal set. Fields in the selected branch that are
// missing from the custom data come out as null; the other branch's keys
// are left out entirely. Values are copied as-is, the upstream shape is
// trusted.
func ExtractStructuredData(callAnalysis map[string]any) map[string]any {
	custom, _ := callAnalysis["custom_analysis_data"].(map[string]any)

	out := map[string]any{
		"call_summary":    callAnalysis["call_summary"],
		"call_successful": callAnalysis["call_successful"],
		"user_sentiment":  callAnalysis["user_sentiment"],
		"in_voicemail":    callAnalysis["in_voicemail"],
		"call_outcome":    custom["call_outcome"],
	}

	branch := analysis.NormalFlowFieldNames()
	if outcome, ok := custom["call_outcome"].(string); ok && outcome == analysis.EmergencyOutcome {
		branch = analysis.EmergencyFlowFieldNames()
	}
	for _, name := range branch {
		out[name] = custom[name]
	}
	return out
}
