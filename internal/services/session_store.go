package services

import (
	"sync"
	"time"

	"portalevents/internal/domain"
)

// memorySessionStore keeps sessions in process memory. Sessions do not survive a restart.
type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	now      func() time.Time
}

func NewMemorySessionStore() domain.SessionStore {
	return &memorySessionStore{sessions: make(map[string]*domain.Session), now: time.Now}
}

// Put stores s and drops every session that has already expired, so sign-ins
// that are never logged out do not accumulate.
func (m *memorySessionStore) Put(s *domain.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for id, existing := range m.sessions {
		if existing.Expired(now) {
			delete(m.sessions, id)
		}
	}
	m.sessions[s.ID] = s
}

func (m *memorySessionStore) Get(id string) (*domain.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *memorySessionStore) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}
