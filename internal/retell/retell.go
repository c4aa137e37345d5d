package retell

import "context"

// Agent is the vendor's agent object, trimmed to the fields we surface.
type Agent struct {
	AgentID        string         `json:"agent_id"`
	AgentName      string         `json:"agent_name"`
	VoiceID        string         `json:"voice_id,omitempty"`
	WebhookURL     string         `json:"webhook_url,omitempty"`
	ResponseEngine ResponseEngine `json:"response_engine"`
	LastModified   int64          `json:"last_modification_timestamp,omitempty"`
}

type ResponseEngine struct {
	Type  string `json:"type"`
	LLMID string `json:"llm_id"`
}

// AgentDetails is the essential view returned by GetAgent: id, name,
// and the prompt backing the agent's LLM.
type AgentDetails struct {
	AgentID string `json:"agent_id"`
	Name    string `json:"name"`
	Prompt  string `json:"prompt"`
}

// WebCall is the vendor's call object returned on web-call creation.
// AccessToken lets the frontend join the call.
type WebCall struct {
	CallID      string `json:"call_id"`
	AgentID     string `json:"agent_id"`
	AccessToken string `json:"access_token"`
	CallStatus  string `json:"call_status"`
}

// Client covers the Retell operations this backend uses. HTTPClient talks
// to the real platform; MockClient fabricates responses for keyless dev.
type Client interface {
	CreateAgent(ctx context.Context, prompt, name string) (Agent, error)
	UpdateAgent(ctx context.Context, agentID string, prompt, name *string) (Agent, error)
	ListAgents(ctx context.Context, limit int, paginationKey string) ([]Agent, error)
	GetAgent(ctx context.Context, agentID string) (AgentDetails, error)
	CreateWebCall(ctx context.Context, agentID string, metadata map[string]any, dynamicVariables map[string]string) (WebCall, error)
}
