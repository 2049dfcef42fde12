package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"amoria/internal/screening/models"
	"amoria/pkg/platform/sentinel"
)

// InMemoryStore keeps search batches in memory for tests and local runs.
type InMemoryStore struct {
	mu      sync.RWMutex
	batches map[string]*models.SearchBatch
}

// New constructs an empty in-memory store.
func New() *InMemoryStore {
	return &InMemoryStore{batches: make(map[string]*models.SearchBatch)}
}

func (s *InMemoryStore) SaveBatch(_ context.Context, batch *models.SearchBatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.batches[batch.CheckID]; ok {
		return sentinel.ErrConflict
	}
	copyBatch := cloneBatch(batch)
	s.batches[batch.CheckID] = copyBatch
	return nil
}

func (s *InMemoryStore) FindByCheckID(_ context.Context, checkID string) (*models.SearchBatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	batch, ok := s.batches[checkID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneBatch(batch), nil
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID string) ([]*models.SearchBatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.SearchBatch
	for _, batch := range s.batches {
		if batch.UserID == userID {
			out = append(out, cloneBatch(batch))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemoryStore) FinalizeSelection(_ context.Context, checkID string, index int, selectedAt time.Time) (*models.SearchBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	batch, ok := s.batches[checkID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if batch.SelectedIndex != nil {
		return nil, sentinel.ErrConflict
	}
	idx := index
	batch.SelectedIndex = &idx
	batch.SelectedAt = &selectedAt
	return cloneBatch(batch), nil
}

// cloneBatch returns a copy to prevent external modifications.
func cloneBatch(batch *models.SearchBatch) *models.SearchBatch {
	copyBatch := *batch
	copyBatch.People = make([]models.PersonCandidate, len(batch.People))
	copy(copyBatch.People, batch.People)
	if batch.SelectedIndex != nil {
		idx := *batch.SelectedIndex
		copyBatch.SelectedIndex = &idx
	}
	if batch.SelectedAt != nil {
		at := *batch.SelectedAt
		copyBatch.SelectedAt = &at
	}
	return &copyBatch
}
