package gist

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps gists in a map. Contents are lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	gists map[string]*Gist
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{gists: make(map[string]*Gist)}
}

// Put stores a copy of g.
func (s *MemoryStore) Put(_ context.Context, g *Gist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gists[g.ID] = clone(g)
	return nil
}

// Get returns a copy of the stored gist.
func (s *MemoryStore) Get(_ context.Context, id string) (*Gist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.gists[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(g), nil
}

// SetEphemeral updates the expiry flag of a gist.
func (s *MemoryStore) SetEphemeral(_ context.Context, id string, ephemeral bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.gists[id]
	if !ok {
		return ErrNotFound
	}
	g.Ephemeral = ephemeral
	return nil
}

// DeleteExpired removes ephemeral gists created before cutoff.
func (s *MemoryStore) DeleteExpired(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, g := range s.gists {
		if g.Ephemeral && g.CreatedAt.Before(cutoff) {
			delete(s.gists, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored gists.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.gists)
}

// Close does nothing.
func (s *MemoryStore) Close() error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
