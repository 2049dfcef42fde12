package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"amoria/internal/audit"
	"amoria/internal/billing/metrics"
	"amoria/internal/billing/models"
	"amoria/internal/billing/store"
	dErrors "amoria/pkg/domain-errors"
)

// Option configures the Service.
type Option func(*Service)

// Service grants subscription plans outside the normal payment flow.
type Service struct {
	store   store.Store
	auditor *audit.Publisher
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewService wires the billing service.
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

// WithMetrics attaches Prometheus metrics to the service.
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

// MarkPlanAsPaid creates an active purchase for the user. Refused before any
// write when the user already holds a plan whose expiry is strictly in the
// future. The expiry is the grant time plus the plan's fixed duration.
func (s *Service) MarkPlanAsPaid(ctx context.Context, operatorID, userID string, plan models.PlanName, notes string) (*models.Purchase, error) {
	if userID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user ID is required")
	}
	if !plan.IsValid() {
		s.incrementRefusals("invalid_plan")
		return nil, dErrors.New(dErrors.CodeInvalidPlanName, fmt.Sprintf("unknown plan name: %s", plan))
	}

	existing, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to read purchases", err)
	}
	now := s.now()
	for _, purchase := range existing {
		if purchase.IsActive(now) {
			s.incrementRefusals("active_plan")
			return nil, dErrors.New(dErrors.CodeAlreadyHasPlan, "user already has an active plan")
		}
	}

	purchase := &models.Purchase{
		ID:         fmt.Sprintf("purchase_%s", uuid.New().String()),
		UserID:     userID,
		Plan:       plan,
		Status:     models.PurchaseActive,
		Notes:      notes,
		GrantedAt:  now,
		ExpiryDate: now.Add(plan.Duration()),
	}
	if err := s.store.Save(ctx, purchase); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to save purchase", err)
	}

	s.incrementGrants(string(plan))
	s.emitAudit(ctx, audit.Event{
		OperatorID: operatorID,
		UserID:     userID,
		Action:     audit.ActionPlanGranted,
		Notes:      notes,
		Detail:     string(plan),
		Timestamp:  now,
	})
	return purchase, nil
}

// HasActivePlan reports whether the user holds an unexpired purchase.
// Used by callers that gate the override client-side before any request.
func (s *Service) HasActivePlan(ctx context.Context, userID string) (bool, error) {
	purchases, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return false, dErrors.Wrap(dErrors.CodeInternal, "failed to read purchases", err)
	}
	now := s.now()
	for _, purchase := range purchases {
		if purchase.IsActive(now) {
			return true, nil
		}
	}
	return false, nil
}

// ListPurchases returns the user's purchase history, newest first.
func (s *Service) ListPurchases(ctx context.Context, userID string) ([]*models.Purchase, error) {
	if userID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user ID is required")
	}
	purchases, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to read purchases", err)
	}
	return purchases, nil
}

func (s *Service) incrementGrants(plan string) {
	if s.metrics == nil {
		return
	}
	s.metrics.PlanGrants.WithLabelValues(plan).Inc()
}

func (s *Service) incrementRefusals(reason string) {
	if s.metrics == nil {
		return
	}
	s.metrics.GrantRefused.WithLabelValues(reason).Inc()
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	s.auditor.Emit(ctx, event)
}
