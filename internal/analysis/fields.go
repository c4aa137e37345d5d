// Package analysis defines the structured fields extracted from calls.
// Shared by agent provisioning (the fields are registered with Retell as
// post-call analysis data) and by webhook post-processing.
package analysis

// Field describes one post-call extraction field in Retell's
// post_call_analysis_data format.
type Field struct {
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Examples    []string `json:"examples,omitempty"`
}

// EmergencyOutcome is the discriminator value selecting the emergency
// field branch. Exact, case-sensitive match.
const EmergencyOutcome = "Emergency"

// RequiredFields are always extracted.
var RequiredFields = []Field{
	{
		Type:        "string",
		Name:        "call_outcome",
		Description: "The call outcome type. Always extract this field.",
		Examples:    []string{"In-Transit Update", "Arrival Confirmation", "Emergency"},
	},
}

// NormalFlowFields apply to In-Transit Update and Arrival Confirmation calls.
var NormalFlowFields = []Field{
	{
		Type:        "string",
		Name:        "driver_status",
		Description: "Driver status. Only if call_outcome is not Emergency.",
		Examples:    []string{"Driving", "Delayed", "Arrived", "Unloading"},
	},
	{
		Type:        "string",
		Name:        "current_location",
		Description: "Driver location. Only if call_outcome is not Emergency.",
		Examples:    []string{"I-10 near Indio, CA", "Truck stop in Barstow"},
	},
	{
		Type:        "string",
		Name:        "eta",
		Description: "ETA to destination. Only if call_outcome is not Emergency.",
		Examples:    []string{"Tomorrow, 8:00 AM", "In 2 hours", "N/A"},
	},
	{
		Type:        "string",
		Name:        "delay_reason",
		Description: "Delay reason. Only if call_outcome is not Emergency.",
		Examples:    []string{"Heavy Traffic", "Weather", "None"},
	},
	{
		Type:        "string",
		Name:        "unloading_status",
		Description: "Unloading status. Only if call_outcome is not Emergency.",
		Examples:    []string{"In Door 42", "Waiting for Lumper", "Detention", "N/A"},
	},
	{
		Type:        "boolean",
		Name:        "pod_reminder_acknowledged",
		Description: "POD reminder acknowledged. Only if not Emergency.",
	},
}

// EmergencyFlowFields apply when call_outcome is Emergency.
var EmergencyFlowFields = []Field{
	{
		Type:        "string",
		Name:        "emergency_type",
		Description: "Emergency type. Only if call_outcome is Emergency.",
		Examples:    []string{"Accident", "Breakdown", "Medical", "Other"},
	},
	{
		Type:        "string",
		Name:        "safety_status",
		Description: "Safety status. Only if call_outcome is Emergency.",
		Examples:    []string{"Driver confirmed everyone is safe", "Unknown"},
	},
	{
		Type:        "string",
		Name:        "injury_status",
		Description: "Injury status. Only if call_outcome is Emergency.",
		Examples:    []string{"No injuries reported", "Injuries reported"},
	},
	{
		Type:        "string",
		Name:        "emergency_location",
		Description: "Emergency location. Only if call_outcome is Emergency.",
		Examples:    []string{"I-15 North, Mile Marker 123"},
	},
	{
		Type:        "boolean",
		Name:        "load_secure",
		Description: "Load secure status. Only if call_outcome is Emergency.",
	},
	{
		Type:        "string",
		Name:        "escalation_status",
		Description: "Escalation status. Only if call_outcome is Emergency.",
		Examples:    []string{"Connected to Human Dispatcher"},
	},
}

// AllFields is the combined list registered in Retell agent configuration.
func AllFields() []Field {
	out := make([]Field, 0, len(RequiredFields)+len(NormalFlowFields)+len(EmergencyFlowFields))
	out = append(out, RequiredFields...)
	out = append(out, NormalFlowFields...)
	out = append(out, EmergencyFlowFields...)
	return out
}

func names(fields []Field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Name)
	}
	return out
}

// NormalFlowFieldNames lists the normal-branch extraction keys.
func NormalFlowFieldNames() []string { return names(NormalFlowFields) }

// EmergencyFlowFieldNames lists the emergency-branch extraction keys.
func EmergencyFlowFieldNames() []string { return names(EmergencyFlowFields) }
