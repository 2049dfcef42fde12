// Package service implements operator authentication for the admin backend.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"amoria/internal/audit"
	"amoria/internal/operator/models"
	"amoria/internal/operator/store"
	"amoria/internal/operator/token"
	dErrors "amoria/pkg/domain-errors"
	"amoria/pkg/platform/sentinel"
)

// Service authenticates operators and issues access tokens.
type Service struct {
	store   store.Store
	tokens  *token.Service
	auditor *audit.Publisher
	logger  *slog.Logger
}

// NewService wires the operator service.
func NewService(st store.Store, tokens *token.Service, auditor *audit.Publisher, logger *slog.Logger) *Service {
	return &Service{
		store:   st,
		tokens:  tokens,
		auditor: auditor,
		logger:  logger,
	}
}

// Login verifies the operator's credentials and issues a bearer token.
// Unknown emails and wrong passwords return the same error so that the
// response does not reveal which accounts exist.
func (s *Service) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	operator, err := s.store.FindByEmail(ctx, email)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
	}
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to look up operator", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(operator.PasswordHash), []byte(password)); err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
	}

	signed, expiresAt, err := s.tokens.Issue(operator.ID)
	if err != nil {
		return nil, err
	}

	s.emitAudit(ctx, audit.Event{
		OperatorID: operator.ID,
		Action:     audit.ActionOperatorLoggedIn,
		Timestamp:  time.Now(),
	})

	return &models.LoginResponse{
		Token:      signed,
		ExpiresAt:  expiresAt,
		OperatorID: operator.ID,
		Name:       operator.Name,
	}, nil
}

// Register creates a new operator account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, operator *models.Operator, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "failed to hash password", err)
	}
	operator.PasswordHash = string(hash)
	if operator.CreatedAt.IsZero() {
		operator.CreatedAt = time.Now()
	}
	if err := s.store.Save(ctx, operator); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return dErrors.New(dErrors.CodeConflict, "email is already registered")
		}
		return dErrors.Wrap(dErrors.CodeInternal, "failed to save operator", err)
	}
	return nil
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	s.auditor.Emit(ctx, event)
}
