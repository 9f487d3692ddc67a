package session

import "sync"

// MemoryStore keeps the session in memory. Used by tests and one-shot
// scripted runs.
type MemoryStore struct {
	mu sync.Mutex
	s  *Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.s == nil {
		return nil, ErrNoSession
	}
	copied := *m.s
	return &copied, nil
}

func (m *MemoryStore) Save(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *s
	m.s = &copied
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = nil
	return nil
}
