package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"amoria/internal/screening/models"
	"amoria/pkg/platform/sentinel"
)

// PostgresStore persists search batches in PostgreSQL. Candidate lists are
// stored as a JSONB column so the original sequence survives round-trips
// byte-for-byte in order.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) SaveBatch(ctx context.Context, batch *models.SearchBatch) error {
	if batch == nil {
		return fmt.Errorf("search batch is required")
	}
	people, err := json.Marshal(batch.People)
	if err != nil {
		return fmt.Errorf("marshal candidates: %w", err)
	}
	query := `
		INSERT INTO search_batches (check_id, user_id, source, people, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (check_id) DO NOTHING
		RETURNING check_id
	`
	var storedID string
	err = s.db.QueryRowContext(ctx, query,
		batch.CheckID,
		batch.UserID,
		string(batch.Source),
		people,
		batch.Message,
		batch.CreatedAt,
	).Scan(&storedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("save search batch: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByCheckID(ctx context.Context, checkID string) (*models.SearchBatch, error) {
	query := `
		SELECT check_id, user_id, source, people, message, created_at, selected_index, selected_at
		FROM search_batches
		WHERE check_id = $1
	`
	batch, err := scanBatch(s.db.QueryRowContext(ctx, query, checkID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find search batch: %w", err)
	}
	return batch, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string) ([]*models.SearchBatch, error) {
	query := `
		SELECT check_id, user_id, source, people, message, created_at, selected_index, selected_at
		FROM search_batches
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list search batches: %w", err)
	}
	defer rows.Close()

	var batches []*models.SearchBatch
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan search batch: %w", err)
		}
		batches = append(batches, batch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search batches: %w", err)
	}
	return batches, nil
}

// FinalizeSelection commits a selection exactly once per check. The WHERE
// clause on selected_index makes the second writer lose without a lock.
func (s *PostgresStore) FinalizeSelection(ctx context.Context, checkID string, index int, selectedAt time.Time) (*models.SearchBatch, error) {
	query := `
		UPDATE search_batches
		SET selected_index = $2, selected_at = $3
		WHERE check_id = $1 AND selected_index IS NULL
	`
	res, err := s.db.ExecContext(ctx, query, checkID, index, selectedAt)
	if err != nil {
		return nil, fmt.Errorf("finalize selection: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("finalize selection rows: %w", err)
	}
	if affected == 0 {
		// Either the batch is missing or a selection already landed.
		batch, findErr := s.FindByCheckID(ctx, checkID)
		if findErr != nil {
			return nil, findErr
		}
		if batch.Finalized() {
			return nil, sentinel.ErrConflict
		}
		return nil, sentinel.ErrNotFound
	}
	return s.FindByCheckID(ctx, checkID)
}

type batchRow interface {
	Scan(dest ...any) error
}

func scanBatch(row batchRow) (*models.SearchBatch, error) {
	var batch models.SearchBatch
	var source string
	var people []byte
	var selectedIndex sql.NullInt64
	var selectedAt sql.NullTime
	if err := row.Scan(&batch.CheckID, &batch.UserID, &source, &people, &batch.Message, &batch.CreatedAt, &selectedIndex, &selectedAt); err != nil {
		return nil, err
	}
	batch.Source = models.Source(source)
	if err := json.Unmarshal(people, &batch.People); err != nil {
		return nil, fmt.Errorf("unmarshal candidates: %w", err)
	}
	if selectedIndex.Valid {
		idx := int(selectedIndex.Int64)
		batch.SelectedIndex = &idx
	}
	if selectedAt.Valid {
		batch.SelectedAt = &selectedAt.Time
	}
	return &batch, nil
}
