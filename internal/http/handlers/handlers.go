package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/Gchahm/retell-ai-agent-builder/internal/db"
	"github.com/Gchahm/retell-ai-agent-builder/internal/retell"
	"github.com/Gchahm/retell-ai-agent-builder/internal/service"
)

type Handler struct {
	Store      *db.Store
	Retell     retell.Client
	Processor  *service.WebhookProcessor
	Validator  *validator.Validate
	Logger     zerolog.Logger
	WebhookKey string
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
