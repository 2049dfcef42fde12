package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"amoria/internal/screening/models"
	"amoria/pkg/platform/sentinel"
)

// ProfileStore resolves the stored user profile that search criteria are
// derived from. Returns sentinel.ErrNotFound for unknown users.
type ProfileStore interface {
	FindProfile(ctx context.Context, userID string) (*models.UserProfile, error)
}

// InMemoryProfiles keeps user profiles in memory for tests.
type InMemoryProfiles struct {
	mu       sync.RWMutex
	profiles map[string]models.UserProfile
}

// NewProfiles constructs an empty in-memory profile store.
func NewProfiles() *InMemoryProfiles {
	return &InMemoryProfiles{profiles: make(map[string]models.UserProfile)}
}

// Put stores a profile keyed by user ID.
func (s *InMemoryProfiles) Put(profile models.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UserID] = profile
}

func (s *InMemoryProfiles) FindProfile(_ context.Context, userID string) (*models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &profile, nil
}

// PostgresProfiles reads profiles from the platform's users table.
type PostgresProfiles struct {
	db *sql.DB
}

// NewPostgresProfiles constructs a PostgreSQL-backed profile store.
func NewPostgresProfiles(db *sql.DB) *PostgresProfiles {
	return &PostgresProfiles{db: db}
}

func (s *PostgresProfiles) FindProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	query := `
		SELECT user_id, first_name, last_name, date_of_birth, city, state
		FROM user_profiles
		WHERE user_id = $1
	`
	var profile models.UserProfile
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.FirstName,
		&profile.LastName,
		&profile.DateOfBirth,
		&profile.City,
		&profile.State,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find user profile: %w", err)
	}
	return &profile, nil
}
