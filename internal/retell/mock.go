package retell

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
)

// MockClient runs the backend without a Retell API key. Agents live in
// memory and ids are derived from the input so repeat calls are stable.
type MockClient struct {
	mu     sync.Mutex
	agents map[string]mockAgent
	calls  int
}

type mockAgent struct {
	agent  Agent
	prompt string
}

func NewMockClient() *MockClient {
	return &MockClient{agents: map[string]mockAgent{}}
}

func hashID(prefix, s string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return fmt.Sprintf("%s_%016x", prefix, h.Sum64())
}

func (m *MockClient) CreateAgent(ctx context.Context, prompt, name string) (Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	agent := Agent{
		AgentID:        hashID("agent", name+prompt),
		AgentName:      name,
		VoiceID:        defaultVoiceID,
		ResponseEngine: ResponseEngine{Type: "retell-llm", LLMID: hashID("llm", prompt)},
	}
	m.agents[agent.AgentID] = mockAgent{agent: agent, prompt: prompt}
	return agent, nil
}

func (m *MockClient) UpdateAgent(ctx context.Context, agentID string, prompt, name *string) (Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.agents[agentID]
	if !ok {
		return Agent{}, fmt.Errorf("agent %s not found", agentID)
	}
	if prompt != nil {
		stored.prompt = *prompt
		stored.agent.ResponseEngine.LLMID = hashID("llm", *prompt)
	}
	if name != nil {
		stored.agent.AgentName = *name
	}
	m.agents[agentID] = stored
	return stored.agent, nil
}

func (m *MockClient) ListAgents(ctx context.Context, limit int, paginationKey string) ([]Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Agent, 0, len(m.agents))
	for _, stored := range m.agents {
		if len(out) >= limit && limit > 0 {
			break
		}
		out = append(out, stored.agent)
	}
	return out, nil
}

func (m *MockClient) GetAgent(ctx context.Context, agentID string) (AgentDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.agents[agentID]
	if !ok {
		return AgentDetails{}, fmt.Errorf("agent %s not found", agentID)
	}
	return AgentDetails{AgentID: agentID, Name: stored.agent.AgentName, Prompt: stored.prompt}, nil
}

func (m *MockClient) CreateWebCall(ctx context.Context, agentID string, metadata map[string]any, dynamicVariables map[string]string) (WebCall, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	callID := hashID("call", fmt.Sprintf("%s:%d", agentID, m.calls))
	return WebCall{
		CallID:      callID,
		AgentID:     agentID,
		AccessToken: hashID("token", callID),
		CallStatus:  "registered",
	}, nil
}
