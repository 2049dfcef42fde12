// Package store persists subscription purchase records.
//
// Error Contract:
// - ListByUser returns an empty slice, never ErrNotFound, for users with
//   no purchases
// - Save returns nil on success or wrapped errors on failure
package store

import (
	"context"

	"amoria/internal/billing/models"
)

// Store defines the persistence interface for purchases.
type Store interface {
	Save(ctx context.Context, purchase *models.Purchase) error
	ListByUser(ctx context.Context, userID string) ([]*models.Purchase, error)
}
