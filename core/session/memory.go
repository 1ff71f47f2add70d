package session

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store implementation. It backs tests and is
// the degradation target when a persistent store fails.
type MemoryStore struct {
	mu   sync.RWMutex
	sess Session
	has  bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load implements Store.
func (s *MemoryStore) Load(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.has {
		return Session{}, ErrNotFound
	}
	return s.sess, nil
}

// Save implements Store.
func (s *MemoryStore) Save(ctx context.Context, sess Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sess = sess
	s.has = true
	return nil
}

// Clear implements Store.
func (s *MemoryStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sess = Session{}
	s.has = false
	return nil
}
