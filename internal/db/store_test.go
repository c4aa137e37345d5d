package db

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Gchahm/retell-ai-agent-builder/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	store, err := New(context.Background(), url)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	t.Cleanup(store.Close)
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return store
}

func TestCallLifecycleIntegration(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	callID := fmt.Sprintf("call_test_%d", time.Now().UnixNano())
	call := models.Call{
		ID:          callID,
		AgentID:     "agent_test",
		DriverName:  "Mike",
		PhoneNumber: "+15551234567",
		LoadNumber:  "7891-B",
		Status:      models.CallStatusPending,
	}
	if err := store.InsertCall(ctx, call); err != nil {
		t.Fatalf("insert call: %v", err)
	}

	err := store.WithTx(ctx, func(tx pgx.Tx) error {
		return store.UpdateCallStatus(ctx, tx, callID, models.CallStatusInProgress)
	})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	got, err := store.GetCall(ctx, callID)
	if err != nil {
		t.Fatalf("get call: %v", err)
	}
	if got.Status != models.CallStatusInProgress {
		t.Fatalf("expected in-progress, got %q", got.Status)
	}

	// Upsert twice; one row must come out the other end.
	result := models.CallResult{
		CallID:         callID,
		Transcript:     "first transcript",
		StructuredData: map[string]any{"call_outcome": "In-Transit Update", "driver_status": "Driving"},
	}
	for _, transcript := range []string{"first transcript", "second transcript"} {
		result.Transcript = transcript
		err := store.WithTx(ctx, func(tx pgx.Tx) error {
			return store.UpsertCallResult(ctx, tx, result)
		})
		if err != nil {
			t.Fatalf("upsert result: %v", err)
		}
	}

	stored, err := store.GetCallResult(ctx, callID)
	if err != nil {
		t.Fatalf("get result: %v", err)
	}
	if stored.Transcript != "second transcript" {
		t.Fatalf("expected updated transcript, got %q", stored.Transcript)
	}
	if stored.StructuredData["driver_status"] != "Driving" {
		t.Fatalf("expected structured data round-trip, got %v", stored.StructuredData)
	}

	details, err := store.GetCallDetails(ctx, callID)
	if err != nil {
		t.Fatalf("get details: %v", err)
	}
	if details["transcript"] != "second transcript" {
		t.Fatalf("expected joined transcript, got %v", details["transcript"])
	}
}

func TestGetCallMissingIntegration(t *testing.T) {
	store := testStore(t)
	if _, err := store.GetCall(context.Background(), "call_does_not_exist"); err == nil {
		t.Fatalf("expected error for missing call")
	}
}
