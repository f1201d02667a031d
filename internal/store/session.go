package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when no session row matches the requested ID.
var ErrNotFound = errors.New("session not found")

// SessionRecord is one persisted interview session. Data holds the full
// engine state as a JSON document; the other columns are denormalized
// for listing without decoding the blob.
type SessionRecord struct {
	ID        string
	Candidate string
	Level     string
	Status    string
	Data      []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionSummary is the listing view of a session.
type SessionSummary struct {
	ID        string
	Candidate string
	Level     string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionRepo provides access to persisted sessions.
type SessionRepo interface {
	// Put inserts or replaces a session row. UpdatedAt is set by the
	// repository.
	Put(ctx context.Context, rec SessionRecord) error

	// Get fetches a session by ID. Returns ErrNotFound when absent.
	Get(ctx context.Context, id string) (SessionRecord, error)

	// List returns summaries of all sessions, most recent first.
	List(ctx context.Context) ([]SessionSummary, error)

	// CountByStatus returns the number of sessions per status.
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type sessionRepo struct {
	db *sql.DB
}

func (r *sessionRepo) Put(ctx context.Context, rec SessionRecord) error {
	now := time.Now().UTC()
	created := rec.CreatedAt
	if created.IsZero() {
		created = now
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, candidate, level, status, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			candidate  = excluded.candidate,
			level      = excluded.level,
			status     = excluded.status,
			data       = excluded.data,
			updated_at = excluded.updated_at`,
		rec.ID, rec.Candidate, rec.Level, rec.Status, string(rec.Data), created, now,
	)
	if err != nil {
		return fmt.Errorf("put session %s: %w", rec.ID, err)
	}
	return nil
}

func (r *sessionRepo) Get(ctx context.Context, id string) (SessionRecord, error) {
	var rec SessionRecord
	var data string

	err := r.db.QueryRowContext(ctx, `
		SELECT id, candidate, level, status, data, created_at, updated_at
		FROM sessions WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.Candidate, &rec.Level, &rec.Status, &data, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return SessionRecord{}, ErrNotFound
	}
	if err != nil {
		return SessionRecord{}, fmt.Errorf("get session %s: %w", id, err)
	}

	rec.Data = []byte(data)
	return rec, nil
}

func (r *sessionRepo) List(ctx context.Context) ([]SessionSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, candidate, level, status, created_at, updated_at
		FROM sessions ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var s SessionSummary
		if err := rows.Scan(&s.ID, &s.Candidate, &s.Level, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *sessionRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT status, COUNT(*) FROM sessions GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan count row: %w", err)
		}
		out[status] = n
	}
	return out, rows.Err()
}
