package interview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/skillvet/skillvet/internal/store"
)

// SessionStore persists sessions. The engine saves after every state
// transition so a crashed process resumes from the last answered
// question.
type SessionStore interface {
	Save(ctx context.Context, s *Session) error
	Load(ctx context.Context, id string) (*Session, error)
}

// NewSessionStore wraps a store.SessionRepo, encoding the session as the
// record's JSON document and mirroring the indexed columns.
func NewSessionStore(repo store.SessionRepo) SessionStore {
	return &sessionStore{repo: repo}
}

type sessionStore struct {
	repo store.SessionRepo
}

func (s *sessionStore) Save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.ID, err)
	}
	return s.repo.Put(ctx, store.SessionRecord{
		ID:        sess.ID,
		Candidate: sess.Candidate,
		Level:     string(sess.Level),
		Status:    string(sess.Status),
		Data:      data,
		CreatedAt: sess.CreatedAt,
	})
}

func (s *sessionStore) Load(ctx context.Context, id string) (*Session, error) {
	rec, err := s.repo.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(rec.Data, &sess); err != nil {
		s.quarantine(ctx, rec)
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptSession, id, err)
	}
	if sess.ID != id {
		s.quarantine(ctx, rec)
		return nil, fmt.Errorf("%w: %s: record ID mismatch", ErrCorruptSession, id)
	}
	return &sess, nil
}

// quarantine marks a corrupt record aborted so it stops matching active
// lookups, keeping the undecodable blob intact for inspection.
func (s *sessionStore) quarantine(ctx context.Context, rec store.SessionRecord) {
	if rec.Status == string(StatusAborted) {
		return
	}
	rec.Status = string(StatusAborted)
	_ = s.repo.Put(ctx, rec)
}

// MemoryStore is an in-memory SessionStore for tests.
type MemoryStore struct {
	sessions map[string]*Session
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	var cp Session
	if err := json.Unmarshal(data, &cp); err != nil {
		return err
	}
	m.sessions[s.ID] = &cp
	return nil
}

func (m *MemoryStore) Load(_ context.Context, id string) (*Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}
