package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Gchahm/retell-ai-agent-builder/internal/prompts"
)

type AgentCreateRequest struct {
	Prompt    string `json:"prompt" validate:"required"`
	AgentName string `json:"agent_name"`
}

type AgentUpdateRequest struct {
	Prompt    *string `json:"prompt"`
	AgentName *string `json:"agent_name"`
}

// @Summary Initial prompt template
// @Tags agent-configs
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/agent-configs/initial-prompt [get]
func (h *Handler) InitialPrompt(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"prompt": prompts.InitialPromptTemplate})
}

// @Summary Create agent
// @Description Create a Retell agent; the style guardrails, emergency protocol, and analysis field config are attached server-side
// @Tags agent-configs
// @Accept json
// @Produce json
// @Success 201 {object} retell.Agent
// @Failure 400 {object} map[string]any
// @Router /api/agent-configs [post]
func (h *Handler) AgentCreate(c *gin.Context) {
	var req AgentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	agent, err := h.Retell.CreateAgent(c.Request.Context(), prompts.BuildFullPrompt(req.Prompt), req.AgentName)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to create agent")
		writeError(c, http.StatusInternalServerError, "RETELL_ERROR", "Failed to create agent in Retell", err.Error())
		return
	}
	c.JSON(http.StatusCreated, agent)
}

// @Summary List agents
// @Tags agent-configs
// @Produce json
// @Param limit query int false "1-1000, default 1000"
// @Param pagination_key query string false "Agent ID to continue from"
// @Success 200 {array} retell.Agent
// @Router /api/agent-configs [get]
func (h *Handler) AgentList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "1000"))
	if limit < 1 || limit > 1000 {
		limit = 1000
	}
	agents, err := h.Retell.ListAgents(c.Request.Context(), limit, c.Query("pagination_key"))
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to list agents")
		writeError(c, http.StatusInternalServerError, "RETELL_ERROR", "Failed to fetch agents from Retell", err.Error())
		return
	}
	c.JSON(http.StatusOK, agents)
}

// @Summary Get agent
// @Tags agent-configs
// @Produce json
// @Param agent_id path string true "Agent ID"
// @Success 200 {object} retell.AgentDetails
// @Router /api/agent-configs/{agent_id} [get]
func (h *Handler) AgentGet(c *gin.Context) {
	details, err := h.Retell.GetAgent(c.Request.Context(), c.Param("agent_id"))
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to get agent")
		writeError(c, http.StatusInternalServerError, "RETELL_ERROR", "Failed to fetch agent from Retell", err.Error())
		return
	}
	// Dispatchers edit only their own portion of the prompt.
	details.Prompt = prompts.ExtractUserPrompt(details.Prompt)
	c.JSON(http.StatusOK, details)
}

// @Summary Update agent
// @Tags agent-configs
// @Accept json
// @Produce json
// @Param agent_id path string true "Agent ID"
// @Success 200 {object} retell.Agent
// @Failure 422 {object} map[string]any
// @Router /api/agent-configs/{agent_id} [patch]
func (h *Handler) AgentUpdate(c *gin.Context) {
	var req AgentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if req.Prompt == nil && req.AgentName == nil {
		writeError(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
			"At least one field (prompt or agent_name) must be provided for update", nil)
		return
	}

	prompt := req.Prompt
	if prompt != nil {
		full := prompts.BuildFullPrompt(*prompt)
		prompt = &full
	}

	agent, err := h.Retell.UpdateAgent(c.Request.Context(), c.Param("agent_id"), prompt, req.AgentName)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to update agent")
		writeError(c, http.StatusInternalServerError, "RETELL_ERROR", "Failed to update agent in Retell", err.Error())
		return
	}
	c.JSON(http.StatusOK, agent)
}
