package store

import (
	"context"
	"database/sql"
	"fmt"

	"amoria/internal/billing/models"
)

// PostgresStore persists purchases in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed purchase store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, purchase *models.Purchase) error {
	if purchase == nil {
		return fmt.Errorf("purchase record is required")
	}
	query := `
		INSERT INTO purchases (id, user_id, plan, status, notes, granted_at, expiry_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		purchase.ID,
		purchase.UserID,
		string(purchase.Plan),
		string(purchase.Status),
		purchase.Notes,
		purchase.GrantedAt,
		purchase.ExpiryDate,
	)
	if err != nil {
		return fmt.Errorf("save purchase: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string) ([]*models.Purchase, error) {
	query := `
		SELECT id, user_id, plan, status, notes, granted_at, expiry_date
		FROM purchases
		WHERE user_id = $1
		ORDER BY granted_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var purchases []*models.Purchase
	for rows.Next() {
		var purchase models.Purchase
		var plan, status string
		if err := rows.Scan(&purchase.ID, &purchase.UserID, &plan, &status, &purchase.Notes, &purchase.GrantedAt, &purchase.ExpiryDate); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		purchase.Plan = models.PlanName(plan)
		purchase.Status = models.PurchaseStatus(status)
		purchases = append(purchases, &purchase)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate purchases: %w", err)
	}
	return purchases, nil
}
