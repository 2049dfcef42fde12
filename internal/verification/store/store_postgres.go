package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"amoria/internal/verification/models"
	"amoria/pkg/platform/sentinel"
)

// PostgresStore persists verification state in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed verification store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByUser(ctx context.Context, userID string) (*models.State, error) {
	query := `
		SELECT user_id, status, notes, updated_at
		FROM background_verifications
		WHERE user_id = $1
	`
	var state models.State
	var status string
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&state.UserID, &status, &state.Notes, &state.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find verification state: %w", err)
	}
	state.Status = models.Status(status)
	return &state, nil
}

func (s *PostgresStore) Upsert(ctx context.Context, state *models.State) error {
	if state == nil {
		return fmt.Errorf("verification state is required")
	}
	query := `
		INSERT INTO background_verifications (user_id, status, notes, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET status = EXCLUDED.status, notes = EXCLUDED.notes, updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		state.UserID,
		string(state.Status),
		state.Notes,
		state.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert verification state: %w", err)
	}
	return nil
}
