package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gchahm/retell-ai-agent-builder/internal/service"
)

// RetellWebhook ingests call lifecycle events pushed by Retell. Only
// signature verification and envelope parsing happen on the request path;
// Retell gives webhooks about 10 seconds, so the state transition runs on a
// background goroutine after the 204 is sent. Failures past that point are
// logged only.
func (h *Handler) RetellWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Failed to read body", nil)
		return
	}

	signature := c.GetHeader(service.SignatureHeader)
	if !service.VerifySignature(body, h.WebhookKey, signature) {
		h.Logger.Warn().Str("path", c.Request.URL.Path).Msg("webhook signature verification failed")
		writeError(c, http.StatusUnauthorized, "INVALID_SIGNATURE", "Webhook signature verification failed", nil)
		return
	}

	var event service.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil || !event.Valid() {
		h.Logger.Warn().Str("event", event.Event).Msg("malformed webhook payload dropped")
		writeError(c, http.StatusBadRequest, "INVALID_PAYLOAD", "Malformed webhook payload", nil)
		return
	}

	// Detached from the request context: processing outlives the response.
	go h.Processor.Process(context.Background(), event)

	c.Status(http.StatusNoContent)
}
