package store

import (
	"context"
	"sync"

	"amoria/internal/verification/models"
	"amoria/pkg/platform/sentinel"
)

// InMemoryStore keeps verification state in memory for tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	states map[string]*models.State
}

// New constructs an empty in-memory verification store.
func New() *InMemoryStore {
	return &InMemoryStore{states: make(map[string]*models.State)}
}

func (s *InMemoryStore) FindByUser(_ context.Context, userID string) (*models.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copyState := *state
	return &copyState, nil
}

func (s *InMemoryStore) Upsert(_ context.Context, state *models.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copyState := *state
	s.states[state.UserID] = &copyState
	return nil
}
