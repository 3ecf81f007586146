package workflow

import "sync"

// TokenStore supplies the bearer credential attached to every call. An empty
// token means no credential is stored; the client refuses to dispatch.
type TokenStore interface {
	Token() string
}

// MemoryTokenStore is the in-process TokenStore backing one admin session.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

func (s *MemoryTokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryTokenStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *MemoryTokenStore) Clear() {
	s.Set("")
}
