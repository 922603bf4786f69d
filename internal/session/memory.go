package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-process session store. It backs tests and redis-less
// development; sessions vanish on restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Data
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Data)}
}

func (s *MemoryStore) Create(ctx context.Context) (string, error) {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = &Data{}
	return token, nil
}

func (s *MemoryStore) Get(ctx context.Context, token string) (*Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}
	// Copy so callers cannot mutate store state behind the lock.
	out := &Data{Email: data.Email, Flashes: append([]string(nil), data.Flashes...)}
	return out, nil
}

func (s *MemoryStore) SetIdentity(ctx context.Context, token, email string) error {
	return s.update(token, func(d *Data) { d.Email = email })
}

func (s *MemoryStore) ClearIdentity(ctx context.Context, token string) error {
	return s.update(token, func(d *Data) { d.Email = "" })
}

func (s *MemoryStore) AddFlash(ctx context.Context, token, message string) error {
	return s.update(token, func(d *Data) { d.Flashes = append(d.Flashes, message) })
}

func (s *MemoryStore) PopFlashes(ctx context.Context, token string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}
	flashes := data.Flashes
	data.Flashes = nil
	return flashes, nil
}

func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *MemoryStore) update(token string, mutate func(*Data)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.sessions[token]
	if !ok {
		return ErrNotFound
	}
	mutate(data)
	return nil
}
