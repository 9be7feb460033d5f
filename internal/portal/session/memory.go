package session

import (
	"context"
	"sync"
	"time"

	"github.com/parkmoor/clubhouse/internal/portal/domain"
)

// MemoryStore is an in-process session store for development and
// tests. Expired sessions are dropped lazily on read.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]domain.Session)}
}

func (m *MemoryStore) Create(ctx context.Context, s domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, sessionID string) (domain.Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[sessionID]
	m.mu.RUnlock()

	if !ok {
		return domain.Session{}, ErrNotFound
	}
	if s.Expired(time.Now()) {
		m.mu.Lock()
		delete(m.sessions, sessionID)
		m.mu.Unlock()
		return domain.Session{}, ErrNotFound
	}
	return s, nil
}

func (m *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

func (m *MemoryStore) Ping(ctx context.Context) error { return nil }
