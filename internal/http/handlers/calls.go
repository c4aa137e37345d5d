package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/Gchahm/retell-ai-agent-builder/internal/models"
)

type WebCallCreateRequest struct {
	AgentID     string `json:"agent_id" validate:"required"`
	DriverName  string `json:"driver_name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	LoadNumber  string `json:"load_number" validate:"required"`
}

type RawWebCallRequest struct {
	AgentID          string            `json:"agent_id" validate:"required"`
	Metadata         map[string]any    `json:"metadata"`
	DynamicVariables map[string]string `json:"retell_llm_dynamic_variables"`
}

// @Summary Create web call
// @Description Create a Retell web call for a driver check-in and record it locally. Driver details are injected into the agent prompt as dynamic variables.
// @Tags calls
// @Accept json
// @Produce json
// @Success 201 {object} retell.WebCall
// @Failure 400 {object} map[string]any
// @Router /api/calls/webcall [post]
func (h *Handler) CallCreate(c *gin.Context) {
	var req WebCallCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	dynamicVariables := map[string]string{
		"driver_name":  req.DriverName,
		"phone_number": req.PhoneNumber,
		"load_number":  req.LoadNumber,
	}
	webCall, err := h.Retell.CreateWebCall(c.Request.Context(), req.AgentID, nil, dynamicVariables)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to create web call")
		writeError(c, http.StatusInternalServerError, "RETELL_ERROR", "Failed to create web call in Retell", err.Error())
		return
	}

	call := models.Call{
		ID:          webCall.CallID,
		AgentID:     req.AgentID,
		DriverName:  req.DriverName,
		PhoneNumber: req.PhoneNumber,
		LoadNumber:  req.LoadNumber,
		Status:      models.CallStatusPending,
	}
	if err := h.Store.InsertCall(c.Request.Context(), call); err != nil {
		h.Logger.Error().Err(err).Str("call_id", call.ID).Msg("failed to record call")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to record call", err.Error())
		return
	}

	c.JSON(http.StatusCreated, webCall)
}

// @Summary List calls
// @Tags calls
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/calls [get]
func (h *Handler) CallsList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))

	items, err := h.Store.ListCalls(c.Request.Context(), limit, skip)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list calls", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "limit": limit, "skip": skip})
}

// @Summary Get call
// @Description Call details plus transcript and structured data once the call has been analyzed
// @Tags calls
// @Produce json
// @Param id path string true "Call ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/calls/{id} [get]
func (h *Handler) CallGet(c *gin.Context) {
	result, err := h.Store.GetCallDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Call not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to get call", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Create raw web call
// @Description Create a Retell web call without recording a local call row
// @Tags web-calls
// @Accept json
// @Produce json
// @Success 201 {object} retell.WebCall
// @Router /api/web-calls [post]
func (h *Handler) WebCallCreate(c *gin.Context) {
	var req RawWebCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	webCall, err := h.Retell.CreateWebCall(c.Request.Context(), req.AgentID, req.Metadata, req.DynamicVariables)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to create web call")
		writeError(c, http.StatusInternalServerError, "RETELL_ERROR", "Failed to create web call in Retell", err.Error())
		return
	}
	c.JSON(http.StatusCreated, webCall)
}
