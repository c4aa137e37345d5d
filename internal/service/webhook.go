package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/Gchahm/retell-ai-agent-builder/internal/models"
)

const (
	EventCallStarted  = "call_started"
	EventCallEnded    = "call_ended"
	EventCallAnalyzed = "call_analyzed"
)

// WebhookEvent is the envelope Retell posts to the webhook endpoint.
type WebhookEvent struct {
	Event string      `json:"event"`
	Call  WebhookCall `json:"call"`
}

// WebhookCall is the slice of Retell's call object the processor reads.
type WebhookCall struct {
	CallID       string         `json:"call_id"`
	CallStatus   string         `json:"call_status"`
	Transcript   string         `json:"transcript"`
	CallAnalysis map[string]any `json:"call_analysis"`
}

// Valid reports whether the envelope names a known event and a call id.
func (e WebhookEvent) Valid() bool {
	switch e.Event {
	case EventCallStarted, EventCallEnded, EventCallAnalyzed:
		return e.Call.CallID != ""
	default:
		return false
	}
}

// Store is the slice of the database layer the processor needs. Narrow so
// the pipeline is testable without Postgres.
type Store interface {
	GetCall(ctx context.Context, id string) (models.Call, error)
	WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error
	UpdateCallStatus(ctx context.Context, tx pgx.Tx, callID string, status string) error
	UpsertCallResult(ctx context.Context, tx pgx.Tx, result models.CallResult) error
}

// WebhookProcessor applies call lifecycle events to the store. It runs
// after the webhook response has already been sent, so failures are logged
// and swallowed; there is no caller to report to. Events may arrive more
// than once or out of order: status writes are last-write-wins and the
// result upsert is keyed by call, so reprocessing is harmless.
type WebhookProcessor struct {
	Store  Store
	Logger zerolog.Logger
}

func (p *WebhookProcessor) Process(ctx context.Context, event WebhookEvent) {
	callID := event.Call.CallID
	logger := p.Logger.With().Str("event", event.Event).Str("call_id", callID).Logger()

	call, err := p.Store.GetCall(ctx, callID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Can race with call provisioning; the platform will send
			// further events, so dropping is fine.
			logger.Warn().Msg("webhook event for unknown call, dropped")
			return
		}
		logger.Error().Err(err).Msg("failed to load call")
		return
	}

	switch event.Event {
	case EventCallStarted:
		err = p.setStatus(ctx, call.ID, models.CallStatusInProgress)
	case EventCallEnded:
		status := models.CallStatusFailed
		if event.Call.CallStatus == "ended" {
			status = models.CallStatusCompleted
		}
		err = p.setStatus(ctx, call.ID, status)
	case EventCallAnalyzed:
		err = p.saveResult(ctx, call.ID, event.Call)
	default:
		logger.Warn().Msg("unknown webhook event, dropped")
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("webhook processing failed")
		return
	}
	logger.Info().Msg("webhook event processed")
}

func (p *WebhookProcessor) setStatus(ctx context.Context, callID string, status string) error {
	return p.Store.WithTx(ctx, func(tx pgx.Tx) error {
		return p.Store.UpdateCallStatus(ctx, tx, callID, status)
	})
}

func (p *WebhookProcessor) saveResult(ctx context.Context, callID string, call WebhookCall) error {
	structured := ExtractStructuredData(call.CallAnalysis)
	return p.Store.WithTx(ctx, func(tx pgx.Tx) error {
		return p.Store.UpsertCallResult(ctx, tx, models.CallResult{
			CallID:         callID,
			Transcript:     call.Transcript,
			StructuredData: structured,
		})
	})
}
