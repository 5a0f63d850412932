package memory

import (
	"context"
	"sync"

	"github.com/Blits-planeet/driftv8.xyz/internal/eventledger/domain"
)

type store struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

// Provide returns the in-process ledger store. Same semantics as the durable
// store, scoped to the lifetime of this process.
func Provide() domain.Store {
	return &store{ids: map[string]struct{}{}}
}

func (s *store) Has(_ context.Context, eventID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[eventID]
	return ok, nil
}

func (s *store) Add(_ context.Context, eventID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[eventID]; ok {
		return false, nil
	}
	s.ids[eventID] = struct{}{}
	return true, nil
}
