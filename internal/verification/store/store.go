// Package store persists background verification state.
//
// Error Contract:
// - FindByUser returns sentinel.ErrNotFound when no record exists; callers
//   treat a missing record as the implicit unpaid state
// - Upsert returns nil on success or wrapped errors on failure
package store

import (
	"context"

	"amoria/internal/verification/models"
)

// Store defines the persistence interface for verification state.
type Store interface {
	FindByUser(ctx context.Context, userID string) (*models.State, error)
	Upsert(ctx context.Context, state *models.State) error
}
