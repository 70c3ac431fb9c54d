// Package memory provides an in-process session store for single-node
// deployments and tests. It honours the same contract as the Redis store:
// per-token operations are atomic and an absent or expired token resolves
// to (nil, nil).
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/domain"
)

type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]domain.Session),
		now:      time.Now,
	}
}

func (s *SessionStore) Put(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = *session
	return nil
}

func (s *SessionStore) Get(_ context.Context, token string) (*domain.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if session.Expired(s.now()) {
		// Lazy expiry: drop the stale record on first observation.
		s.mu.Lock()
		if stored, still := s.sessions[token]; still && stored.Expired(s.now()) {
			delete(s.sessions, token)
		}
		s.mu.Unlock()
		return nil, nil
	}

	clone := session
	return &clone, nil
}

func (s *SessionStore) Remove(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// Len reports the number of stored sessions, counting expired records that
// have not been lazily dropped yet.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
