package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"amoria/internal/audit"
	"amoria/internal/verification/metrics"
	"amoria/internal/verification/models"
	"amoria/internal/verification/store"
	dErrors "amoria/pkg/domain-errors"
	"amoria/pkg/platform/sentinel"
)

// Option configures the Service.
type Option func(*Service)

// Service owns the background verification state machine. All status writes
// go through here; notes are mandatory on every transition.
type Service struct {
	store   store.Store
	auditor *audit.Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewService wires the verification service.
func NewService(st store.Store, auditor *audit.Publisher, logger *slog.Logger, opts ...Option) *Service {
	svc := &Service{
		store:   st,
		auditor: auditor,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock overrides the time source for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Get returns the verification state for a user. A user without a stored
// record is implicitly unpaid.
func (s *Service) Get(ctx context.Context, userID string) (*models.State, error) {
	if userID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user ID is required")
	}
	state, err := s.store.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.NewState(userID), nil
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to read verification state", err)
	}
	return state, nil
}

// MarkAsPaid is the only way out of unpaid. It is refused with already_paid
// once the user has left the unpaid state.
func (s *Service) MarkAsPaid(ctx context.Context, operatorID, userID, notes string) (*models.State, error) {
	if err := requireNotes(notes); err != nil {
		return nil, err
	}
	state, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state.Status != models.StatusUnpaid {
		s.incrementRejections("already_paid")
		return nil, dErrors.New(dErrors.CodeAlreadyPaid, "background check is already marked as paid")
	}

	return s.transition(ctx, operatorID, state, models.StatusPending, notes, audit.ActionVerificationPaid)
}

// SetVerification applies an approve/reject/reset transition. It requires a
// non-unpaid purchase record; a violation returns the distinguished
// background_check_not_purchased code for clients to special-case.
func (s *Service) SetVerification(ctx context.Context, operatorID, userID string, target models.Status, notes string) (*models.State, error) {
	if target != models.StatusApproved && target != models.StatusRejected && target != models.StatusPending {
		return nil, dErrors.New(dErrors.CodeBadRequest, "status must be approved, rejected, or pending")
	}
	if err := requireNotes(notes); err != nil {
		return nil, err
	}
	state, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state.Status == models.StatusUnpaid {
		s.incrementRejections("not_purchased")
		return nil, dErrors.New(dErrors.CodeNotPurchased, "background check has not been purchased for this user")
	}
	if !state.CanTransitionTo(target) {
		s.incrementRejections("illegal_transition")
		return nil, dErrors.New(dErrors.CodeConflict, "verification cannot move from "+string(state.Status)+" to "+string(target))
	}

	return s.transition(ctx, operatorID, state, target, notes, audit.ActionVerificationUpdated)
}

func (s *Service) transition(ctx context.Context, operatorID string, state *models.State, target models.Status, notes, action string) (*models.State, error) {
	start := s.now()
	updated := *state
	updated.Status = target
	updated.Notes = notes
	updated.UpdatedAt = start

	if err := s.store.Upsert(ctx, &updated); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to persist verification state", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementTransitions(string(target))
		s.metrics.ObserveTransitionLatency(time.Since(start).Seconds())
	}
	s.emitAudit(ctx, audit.Event{
		OperatorID: operatorID,
		UserID:     state.UserID,
		Action:     action,
		Notes:      notes,
		Detail:     string(state.Status) + " -> " + string(target),
		Timestamp:  start,
	})
	return &updated, nil
}

// requireNotes rejects blank notes before any store write. The reference
// client blocks empty input; the server mirrors the guard so the contract
// holds for every caller.
func requireNotes(notes string) error {
	if strings.TrimSpace(notes) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "notes are required for verification transitions")
	}
	return nil
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	s.auditor.Emit(ctx, event)
}

func (s *Service) incrementRejections(reason string) {
	if s.metrics != nil {
		s.metrics.IncrementRejections(reason)
	}
}
