// Package sentinel defines shared store-level sentinel errors so that
// memory and postgres implementations honor the same error contract.
package sentinel

import "errors"

var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write collides with an existing record,
	// e.g. a second selection finalized for the same check.
	ErrConflict = errors.New("conflict")
)
