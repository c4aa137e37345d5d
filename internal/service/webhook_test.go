package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/Gchahm/retell-ai-agent-builder/internal/models"
)

type fakeStore struct {
	mu      sync.Mutex
	calls   map[string]models.Call
	results map[string]models.CallResult
	upserts int
	txErr   error
}

func newFakeStore(calls ...models.Call) *fakeStore {
	f := &fakeStore{
		calls:   map[string]models.Call{},
		results: map[string]models.CallResult{},
	}
	for _, c := range calls {
		f.calls[c.ID] = c
	}
	return f
}

func (f *fakeStore) GetCall(ctx context.Context, id string) (models.Call, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.calls[id]; ok {
		return c, nil
	}
	return models.Call{}, pgx.ErrNoRows
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	if f.txErr != nil {
		return f.txErr
	}
	return fn(nil)
}

func (f *fakeStore) UpdateCallStatus(ctx context.Context, tx pgx.Tx, callID string, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.calls[callID]
	c.Status = status
	f.calls[callID] = c
	return nil
}

func (f *fakeStore) UpsertCallResult(ctx context.Context, tx pgx.Tx, result models.CallResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	f.results[result.CallID] = result
	return nil
}

func (f *fakeStore) status(id string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[id].Status
}

func newProcessor(store Store) *WebhookProcessor {
	return &WebhookProcessor{Store: store, Logger: zerolog.Nop()}
}

func TestProcessCallStarted(t *testing.T) {
	store := newFakeStore(models.Call{ID: "call_123", Status: models.CallStatusPending})
	p := newProcessor(store)

	event := WebhookEvent{Event: EventCallStarted, Call: WebhookCall{CallID: "call_123"}}
	p.Process(context.Background(), event)

	if got := store.status("call_123"); got != models.CallStatusInProgress {
		t.Fatalf("expected in-progress, got %q", got)
	}

	// Replays land on the same status.
	p.Process(context.Background(), event)
	if got := store.status("call_123"); got != models.CallStatusInProgress {
		t.Fatalf("expected in-progress after replay, got %q", got)
	}
}

func TestProcessCallEnded(t *testing.T) {
	cases := []struct {
		vendorStatus string
		want         string
	}{
		{"ended", models.CallStatusCompleted},
		{"error", models.CallStatusFailed},
		{"", models.CallStatusFailed},
	}
	for _, tc := range cases {
		store := newFakeStore(models.Call{ID: "call_123", Status: models.CallStatusInProgress})
		p := newProcessor(store)

		p.Process(context.Background(), WebhookEvent{
			Event: EventCallEnded,
			Call:  WebhookCall{CallID: "call_123", CallStatus: tc.vendorStatus},
		})
		if got := store.status("call_123"); got != tc.want {
			t.Fatalf("call_status %q: expected %q, got %q", tc.vendorStatus, tc.want, got)
		}
	}
}

func TestProcessCallAnalyzedUpsertsOneResult(t *testing.T) {
	store := newFakeStore(models.Call{ID: "call_123", Status: models.CallStatusCompleted})
	p := newProcessor(store)

	event := WebhookEvent{
		Event: EventCallAnalyzed,
		Call: WebhookCall{
			CallID:     "call_123",
			Transcript: "Agent: status update?\nDriver: arrived.",
			CallAnalysis: map[string]any{
				"call_summary": "Driver arrived.",
				"custom_analysis_data": map[string]any{
					"call_outcome":  "Arrival Confirmation",
					"driver_status": "Arrived",
				},
			},
		},
	}
	p.Process(context.Background(), event)

	if len(store.results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(store.results))
	}
	result := store.results["call_123"]
	if result.StructuredData["driver_status"] != "Arrived" {
		t.Fatalf("expected structured data, got %v", result.StructuredData)
	}

	// Second delivery updates the same record.
	event.Call.Transcript = "Agent: status update?\nDriver: arrived and unloading."
	p.Process(context.Background(), event)

	if len(store.results) != 1 {
		t.Fatalf("expected result updated in place, got %d records", len(store.results))
	}
	if store.upserts != 2 {
		t.Fatalf("expected 2 upserts, got %d", store.upserts)
	}
	if store.results["call_123"].Transcript != event.Call.Transcript {
		t.Fatalf("expected transcript updated")
	}
}

func TestProcessUnknownCallDropped(t *testing.T) {
	store := newFakeStore()
	p := newProcessor(store)

	p.Process(context.Background(), WebhookEvent{
		Event: EventCallEnded,
		Call:  WebhookCall{CallID: "call_missing", CallStatus: "ended"},
	})

	if len(store.calls) != 0 || len(store.results) != 0 {
		t.Fatalf("expected no store mutation for unknown call")
	}
}

func TestProcessStoreFailureDoesNotPanic(t *testing.T) {
	store := newFakeStore(models.Call{ID: "call_123", Status: models.CallStatusPending})
	store.txErr = errors.New("db unavailable")
	p := newProcessor(store)

	p.Process(context.Background(), WebhookEvent{Event: EventCallStarted, Call: WebhookCall{CallID: "call_123"}})

	if got := store.status("call_123"); got != models.CallStatusPending {
		t.Fatalf("expected status unchanged on tx failure, got %q", got)
	}
}

func TestWebhookEventValid(t *testing.T) {
	valid := WebhookEvent{Event: EventCallStarted, Call: WebhookCall{CallID: "call_1"}}
	if !valid.Valid() {
		t.Fatalf("expected valid envelope")
	}
	if (WebhookEvent{Event: "call_exploded", Call: WebhookCall{CallID: "call_1"}}).Valid() {
		t.Fatalf("expected unknown event to be invalid")
	}
	if (WebhookEvent{Event: EventCallStarted}).Valid() {
		t.Fatalf("expected missing call id to be invalid")
	}
}
