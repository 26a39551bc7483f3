// Package memstore holds in-process fallbacks for stores that normally
// live in redis, used when redis is unreachable at startup.
package memstore

import (
	"context"
	"sync"
	"time"
)

// CSRFStore keeps issued CSRF tokens in process memory with their
// expiry. Tokens do not survive a restart and are not shared across
// replicas; the redis-backed store is preferred whenever redis answers.
type CSRFStore struct {
	mu     sync.Mutex
	tokens map[string]time.Time
}

func NewCSRFStore() *CSRFStore {
	return &CSRFStore{tokens: make(map[string]time.Time)}
}

func (s *CSRFStore) Save(ctx context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = time.Now().Add(ttl)
	return nil
}

func (s *CSRFStore) Exists(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.tokens[token]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(s.tokens, token)
		return false, nil
	}
	return true, nil
}
