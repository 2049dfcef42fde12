package store

import (
	"context"
	"sync"

	"amoria/internal/billing/models"
)

// InMemoryStore keeps purchases in memory for tests.
type InMemoryStore struct {
	mu        sync.RWMutex
	purchases map[string][]*models.Purchase
}

// New constructs an empty in-memory purchase store.
func New() *InMemoryStore {
	return &InMemoryStore{purchases: make(map[string][]*models.Purchase)}
}

func (s *InMemoryStore) Save(_ context.Context, purchase *models.Purchase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copyPurchase := *purchase
	s.purchases[purchase.UserID] = append(s.purchases[purchase.UserID], &copyPurchase)
	return nil
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID string) ([]*models.Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.purchases[userID]
	out := make([]*models.Purchase, 0, len(records))
	for _, purchase := range records {
		copyPurchase := *purchase
		out = append(out, &copyPurchase)
	}
	return out, nil
}
