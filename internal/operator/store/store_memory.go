package store

import (
	"context"
	"strings"
	"sync"

	"amoria/internal/operator/models"
	"amoria/pkg/platform/sentinel"
)

// InMemoryStore keeps operator accounts in memory for tests and seeding.
type InMemoryStore struct {
	mu      sync.RWMutex
	byID    map[string]*models.Operator
	byEmail map[string]string
}

// New constructs an empty in-memory operator store.
func New() *InMemoryStore {
	return &InMemoryStore{
		byID:    make(map[string]*models.Operator),
		byEmail: make(map[string]string),
	}
}

func (s *InMemoryStore) Save(_ context.Context, operator *models.Operator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(operator.Email)
	if _, exists := s.byEmail[email]; exists {
		return sentinel.ErrConflict
	}
	copyOp := *operator
	s.byID[operator.ID] = &copyOp
	s.byEmail[email] = operator.ID
	return nil
}

func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (*models.Operator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copyOp := *s.byID[id]
	return &copyOp, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (*models.Operator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	operator, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copyOp := *operator
	return &copyOp, nil
}
