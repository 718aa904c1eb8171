package store

import (
	"context"
	"sync"

	"shopez/internal/session/models"
	id "shopez/pkg/domain"
	"shopez/pkg/platform/sentinel"
)

// InMemory keeps session aggregates in process memory, which is the whole
// point of this system: nothing survives the process. It favors clarity
// over performance.
type InMemory struct {
	mu       sync.RWMutex
	sessions map[id.SessionID]*models.Session
}

func NewInMemory() *InMemory {
	return &InMemory{sessions: make(map[id.SessionID]*models.Session)}
}

func (s *InMemory) Save(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session.Clone()
	return nil
}

// FindByID returns a copy; mutations must go through Execute.
func (s *InMemory) FindByID(_ context.Context, sid id.SessionID) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sid]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return session.Clone(), nil
}

func (s *InMemory) Delete(_ context.Context, sid id.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sid]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.sessions, sid)
	return nil
}

// Execute holds the write lock across validate and mutate so a command
// either fully applies or leaves the session untouched.
func (s *InMemory) Execute(
	_ context.Context,
	sid id.SessionID,
	validate func(*models.Session) error,
	mutate func(*models.Session),
) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sid]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if validate != nil {
		if err := validate(session); err != nil {
			return nil, err
		}
	}
	if mutate != nil {
		mutate(session)
	}
	return session.Clone(), nil
}

// Len reports how many sessions are live. Used by metrics collection.
func (s *InMemory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
