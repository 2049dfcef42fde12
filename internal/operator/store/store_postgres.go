package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"amoria/internal/operator/models"
	"amoria/pkg/platform/sentinel"
)

// PostgresStore persists operator accounts in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed operator store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, operator *models.Operator) error {
	query := `
		INSERT INTO operators (id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO NOTHING
		RETURNING id
	`
	var id string
	err := s.db.QueryRowContext(ctx, query,
		operator.ID,
		strings.ToLower(operator.Email),
		operator.Name,
		operator.PasswordHash,
		operator.CreatedAt,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("save operator: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.Operator, error) {
	query := `
		SELECT id, email, name, password_hash, created_at
		FROM operators
		WHERE email = $1
	`
	return s.scanOperator(s.db.QueryRowContext(ctx, query, strings.ToLower(email)))
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*models.Operator, error) {
	query := `
		SELECT id, email, name, password_hash, created_at
		FROM operators
		WHERE id = $1
	`
	return s.scanOperator(s.db.QueryRowContext(ctx, query, id))
}

func (s *PostgresStore) scanOperator(row *sql.Row) (*models.Operator, error) {
	var operator models.Operator
	err := row.Scan(&operator.ID, &operator.Email, &operator.Name, &operator.PasswordHash, &operator.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan operator: %w", err)
	}
	return &operator, nil
}
