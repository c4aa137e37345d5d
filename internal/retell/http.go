package retell

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Gchahm/retell-ai-agent-builder/internal/analysis"
)

const defaultVoiceID = "11labs-Adrian"

type HTTPClient struct {
	BaseURL    string
	APIKey     string
	WebhookURL string
	Client     *http.Client
}

type llmBody struct {
	LLMID         string `json:"llm_id"`
	GeneralPrompt string `json:"general_prompt"`
	StartSpeaker  string `json:"start_speaker,omitempty"`
}

func (c HTTPClient) CreateAgent(ctx context.Context, prompt, name string) (Agent, error) {
	var llm llmBody
	if err := c.do(ctx, http.MethodPost, "/create-retell-llm", map[string]any{
		"general_prompt": prompt,
		"start_speaker":  "agent",
	}, &llm); err != nil {
		return Agent{}, fmt.Errorf("create retell llm: %w", err)
	}

	body := map[string]any{
		"response_engine":         map[string]any{"type": "retell-llm", "llm_id": llm.LLMID},
		"voice_id":                defaultVoiceID,
		"post_call_analysis_data": analysis.AllFields(),
	}
	if name != "" {
		body["agent_name"] = name
	}
	if c.WebhookURL != "" {
		body["webhook_url"] = c.WebhookURL
	}

	var agent Agent
	if err := c.do(ctx, http.MethodPost, "/create-agent", body, &agent); err != nil {
		return Agent{}, fmt.Errorf("create agent: %w", err)
	}
	return agent, nil
}

func (c HTTPClient) UpdateAgent(ctx context.Context, agentID string, prompt, name *string) (Agent, error) {
	body := map[string]any{}
	if prompt != nil {
		// The prompt lives on the LLM, so a prompt change means a fresh
		// LLM wired into the agent's response engine.
		var llm llmBody
		if err := c.do(ctx, http.MethodPost, "/create-retell-llm", map[string]any{
			"general_prompt": *prompt,
			"start_speaker":  "agent",
		}, &llm); err != nil {
			return Agent{}, fmt.Errorf("create retell llm: %w", err)
		}
		body["response_engine"] = map[string]any{"type": "retell-llm", "llm_id": llm.LLMID}
	}
	if name != nil {
		body["agent_name"] = *name
	}

	var agent Agent
	if err := c.do(ctx, http.MethodPatch, "/update-agent/"+url.PathEscape(agentID), body, &agent); err != nil {
		return Agent{}, fmt.Errorf("update agent: %w", err)
	}
	return agent, nil
}

func (c HTTPClient) ListAgents(ctx context.Context, limit int, paginationKey string) ([]Agent, error) {
	path := fmt.Sprintf("/list-agents?limit=%d", limit)
	if paginationKey != "" {
		path += "&pagination_key=" + url.QueryEscape(paginationKey)
	}
	var agents []Agent
	if err := c.do(ctx, http.MethodGet, path, nil, &agents); err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	return agents, nil
}

func (c HTTPClient) GetAgent(ctx context.Context, agentID string) (AgentDetails, error) {
	var agent Agent
	if err := c.do(ctx, http.MethodGet, "/get-agent/"+url.PathEscape(agentID), nil, &agent); err != nil {
		return AgentDetails{}, fmt.Errorf("get agent: %w", err)
	}

	details := AgentDetails{AgentID: agent.AgentID, Name: agent.AgentName}
	if agent.ResponseEngine.LLMID != "" {
		var llm llmBody
		if err := c.do(ctx, http.MethodGet, "/get-retell-llm/"+url.PathEscape(agent.ResponseEngine.LLMID), nil, &llm); err != nil {
			return AgentDetails{}, fmt.Errorf("get retell llm: %w", err)
		}
		details.Prompt = llm.GeneralPrompt
	}
	return details, nil
}

func (c HTTPClient) CreateWebCall(ctx context.Context, agentID string, metadata map[string]any, dynamicVariables map[string]string) (WebCall, error) {
	body := map[string]any{"agent_id": agentID}
	if len(metadata) > 0 {
		body["metadata"] = metadata
	}
	if len(dynamicVariables) > 0 {
		body["retell_llm_dynamic_variables"] = dynamicVariables
	}
	var call WebCall
	if err := c.do(ctx, http.MethodPost, "/v2/create-web-call", body, &call); err != nil {
		return WebCall{}, fmt.Errorf("create web call: %w", err)
	}
	return call, nil
}

func (c HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	client := c.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	base := strings.TrimRight(c.BaseURL, "/")
	req, err := http.NewRequestWithContext(ctx, method, base+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return fmt.Errorf("retell %s %s: %s: %v", method, path, resp.Status, errBody)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
