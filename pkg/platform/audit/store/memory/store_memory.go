package memory

import (
	"context"
	"sync"

	id "shopez/pkg/domain"
	audit "shopez/pkg/platform/audit"
)

// InMemoryStore keeps audit events per session for the lifetime of the
// process. Insertion order is preserved within and across sessions.
type InMemoryStore struct {
	mu        sync.RWMutex
	bySession map[id.SessionID][]audit.Event
	all       []audit.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{bySession: make(map[id.SessionID][]audit.Event)}
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bySession[event.SessionID] = append(s.bySession[event.SessionID], event)
	s.all = append(s.all, event)
	return nil
}

func (s *InMemoryStore) ListBySession(_ context.Context, sid id.SessionID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.bySession[sid]...), nil
}

// ListRecent returns the most recent limit events across all sessions.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := len(s.all) - limit
	if start < 0 {
		start = 0
	}
	return append([]audit.Event{}, s.all[start:]...), nil
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bySession = make(map[id.SessionID][]audit.Event)
	s.all = nil
}
