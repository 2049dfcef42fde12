// Package store persists operator accounts.
//
// Error Contract:
// - FindByEmail and FindByID return sentinel.ErrNotFound for unknown operators
// - Save returns sentinel.ErrConflict when the email is already registered
package store

import (
	"context"

	"amoria/internal/operator/models"
)

// Store defines the persistence interface for operator accounts.
type Store interface {
	Save(ctx context.Context, operator *models.Operator) error
	FindByEmail(ctx context.Context, email string) (*models.Operator, error)
	FindByID(ctx context.Context, id string) (*models.Operator, error)
}
