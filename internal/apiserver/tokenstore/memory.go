package tokenstore

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store with an in-process map
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]*Token
}

// NewMemoryStore creates a new memory store instance
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tokens: make(map[string]*Token),
	}
}

func (s *MemoryStore) Save(ctx context.Context, token *Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token.CreatedAt == 0 {
		token.CreatedAt = time.Now().Unix()
	}
	s.tokens[token.AccessToken] = token
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, accessToken string) (*Token, error) {
	s.mu.RLock()
	token, ok := s.tokens[accessToken]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrTokenNotFound
	}
	if token.ExpiresAt > 0 && token.ExpiresAt < time.Now().Unix() {
		_ = s.Delete(ctx, accessToken)
		return nil, ErrTokenExpired
	}
	return token, nil
}

func (s *MemoryStore) Delete(ctx context.Context, accessToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, accessToken)
	return nil
}
