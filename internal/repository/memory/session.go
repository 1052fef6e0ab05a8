package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"vocabquiz/internal/quiz"
	"vocabquiz/internal/repository"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// SessionStore keeps quiz sessions in process memory.
// Sessions are stored as snapshots, so callers never share state.
type SessionStore struct {
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]entry
	now      func() time.Time
}

// NewSessionStore creates an in-memory store whose sessions expire after ttl
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]entry),
		now:      time.Now,
	}
}

// SaveSession stores a snapshot of session and refreshes its expiry
func (s *SessionStore) SaveSession(_ context.Context, session *quiz.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// drop expired sessions while holding the write lock
	now := s.now()
	for id, e := range s.sessions {
		if now.After(e.expiresAt) {
			delete(s.sessions, id)
		}
	}

	s.sessions[session.ID] = entry{data: data, expiresAt: now.Add(s.ttl)}
	return nil
}

// GetSession returns a copy of a stored session
func (s *SessionStore) GetSession(_ context.Context, sessionID string) (*quiz.Session, error) {
	s.mu.RLock()
	e, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok || s.now().After(e.expiresAt) {
		return nil, repository.ErrSessionNotFound
	}

	var session quiz.Session
	if err := json.Unmarshal(e.data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteSession removes a session; deleting a missing session is not an error
func (s *SessionStore) DeleteSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}
