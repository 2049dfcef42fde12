// Package store persists search batches and their selection state.
//
// Error Contract:
// - Find methods return sentinel.ErrNotFound when no batch exists
// - FinalizeSelection returns sentinel.ErrConflict when the batch was
//   already finalized, so a second writer surfaces as 409 at the boundary
// - Other methods return nil on success or wrapped errors on failure
package store

import (
	"context"
	"time"

	"amoria/internal/screening/models"
)

// Store defines the persistence interface for search batches.
type Store interface {
	SaveBatch(ctx context.Context, batch *models.SearchBatch) error
	FindByCheckID(ctx context.Context, checkID string) (*models.SearchBatch, error)
	ListByUser(ctx context.Context, userID string) ([]*models.SearchBatch, error)
	FinalizeSelection(ctx context.Context, checkID string, index int, selectedAt time.Time) (*models.SearchBatch, error)
}
