package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gchahm/retell-ai-agent-builder/internal/models"
)

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

// EnsureSchema creates the tables on startup when they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS calls (
			id TEXT PRIMARY KEY,
			agent_id TEXT NOT NULL,
			driver_name TEXT NOT NULL,
			phone_number TEXT NOT NULL,
			load_number TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_calls_agent_id ON calls (agent_id);
		CREATE TABLE IF NOT EXISTS call_results (
			id BIGSERIAL PRIMARY KEY,
			call_id TEXT NOT NULL UNIQUE REFERENCES calls (id),
			transcript TEXT NOT NULL,
			structured_data JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

func (s *Store) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) InsertCall(ctx context.Context, call models.Call) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO calls (id, agent_id, driver_name, phone_number, load_number, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,NOW(),NOW())
	`, call.ID, call.AgentID, call.DriverName, call.PhoneNumber, call.LoadNumber, call.Status)
	return err
}

func (s *Store) GetCall(ctx context.Context, id string) (models.Call, error) {
	var c models.Call
	err := s.Pool.QueryRow(ctx, `
		SELECT id, agent_id, driver_name, phone_number, load_number, status, created_at, updated_at
		FROM calls WHERE id = $1
	`, id).Scan(&c.ID, &c.AgentID, &c.DriverName, &c.PhoneNumber, &c.LoadNumber, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (s *Store) ListCalls(ctx context.Context, limit, offset int) ([]models.Call, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT id, agent_id, driver_name, phone_number, load_number, status, created_at, updated_at
		FROM calls ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Call
	for rows.Next() {
		var c models.Call
		if err := rows.Scan(&c.ID, &c.AgentID, &c.DriverName, &c.PhoneNumber, &c.LoadNumber, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetCallDetails returns a call joined with its result, when one exists.
func (s *Store) GetCallDetails(ctx context.Context, id string) (map[string]any, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT c.id, c.agent_id, c.driver_name, c.phone_number, c.load_number, c.status, c.created_at, c.updated_at,
			r.transcript, r.structured_data
		FROM calls c
		LEFT JOIN call_results r ON r.call_id = c.id
		WHERE c.id = $1
	`, id)

	var (
		c          models.Call
		transcript *string
		structured []byte
	)
	if err := row.Scan(&c.ID, &c.AgentID, &c.DriverName, &c.PhoneNumber, &c.LoadNumber, &c.Status, &c.CreatedAt, &c.UpdatedAt, &transcript, &structured); err != nil {
		return nil, err
	}

	result := map[string]any{
		"id":           c.ID,
		"agent_id":     c.AgentID,
		"driver_name":  c.DriverName,
		"phone_number": c.PhoneNumber,
		"load_number":  c.LoadNumber,
		"status":       c.Status,
		"created_at":   c.CreatedAt,
		"updated_at":   c.UpdatedAt,
		"transcript":      nil,
		"structured_data": nil,
	}
	if transcript != nil {
		result["transcript"] = *transcript
	}
	if len(structured) > 0 {
		var data map[string]any
		if err := json.Unmarshal(structured, &data); err == nil {
			result["structured_data"] = data
		}
	}
	return result, nil
}

func (s *Store) UpdateCallStatus(ctx context.Context, tx pgx.Tx, callID string, status string) error {
	_, err := tx.Exec(ctx, `UPDATE calls SET status = $1, updated_at = NOW() WHERE id = $2`, status, callID)
	return err
}

func (s *Store) UpsertCallResult(ctx context.Context, tx pgx.Tx, result models.CallResult) error {
	structured, err := json.Marshal(result.StructuredData)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO call_results (call_id, transcript, structured_data, created_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (call_id) DO UPDATE SET
			transcript = EXCLUDED.transcript,
			structured_data = EXCLUDED.structured_data
	`, result.CallID, result.Transcript, structured, time.Now().UTC())
	return err
}

func (s *Store) GetCallResult(ctx context.Context, callID string) (models.CallResult, error) {
	var (
		r          models.CallResult
		structured []byte
	)
	err := s.Pool.QueryRow(ctx, `
		SELECT id, call_id, transcript, structured_data, created_at
		FROM call_results WHERE call_id = $1
	`, callID).Scan(&r.ID, &r.CallID, &r.Transcript, &structured, &r.CreatedAt)
	if err != nil {
		return models.CallResult{}, err
	}
	if len(structured) > 0 {
		_ = json.Unmarshal(structured, &r.StructuredData)
	}
	return r, nil
}
