package models

import "time"

const (
	CallStatusPending    = "pending"
	CallStatusInProgress = "in-progress"
	CallStatusCompleted  = "completed"
	CallStatusFailed     = "failed"
)

// Call is one attempted or completed voice interaction with a driver.
// ID is the Retell call id; webhook events are matched on it.
type Call struct {
	ID          string    `json:"id"`
	AgentID     string    `json:"agent_id"`
	DriverName  string    `json:"driver_name"`
	PhoneNumber string    `json:"phone_number"`
	LoadNumber  string    `json:"load_number"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CallResult holds the transcript and post-call structured summary.
// At most one per call; the call_analyzed event upserts it.
type CallResult struct {
	ID             int64          `json:"id"`
	CallID         string         `json:"call_id"`
	Transcript     string         `json:"transcript"`
	StructuredData map[string]any `json:"structured_data"`
	CreatedAt      time.Time      `json:"created_at"`
}
