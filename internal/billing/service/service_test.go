package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"amoria/internal/audit"
	"amoria/internal/billing/models"
	"amoria/internal/billing/store"
	dErrors "amoria/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	store   *store.InMemoryStore
	sink    *audit.InMemorySink
	service *Service
	now     time.Time
}

func (s *ServiceSuite) SetupTest() {
	s.store = store.New()
	s.sink = audit.NewInMemorySink()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.service = NewService(
		s.store,
		audit.NewPublisher(s.sink, logger),
		logger,
		WithClock(func() time.Time { return s.now }),
	)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

// TestMarkPlanAsPaid_ExpiryFromFixedDurations verifies the expiry comes from
// the server-side duration table, never from the request.
func (s *ServiceSuite) TestMarkPlanAsPaid_ExpiryFromFixedDurations() {
	cases := []struct {
		plan models.PlanName
		days int
	}{
		{models.PlanBasic, 30},
		{models.PlanUpgrade, 30},
		{models.PlanQuarterly, 90},
	}
	for _, tc := range cases {
		s.T().Run(string(tc.plan), func(t *testing.T) {
			userID := "user-" + string(tc.plan)
			purchase, err := s.service.MarkPlanAsPaid(context.Background(), "op-1", userID, tc.plan, "comp")
			require.NoError(t, err)
			assert.Equal(t, models.PurchaseActive, purchase.Status)
			assert.Equal(t, s.now.Add(time.Duration(tc.days)*24*time.Hour), purchase.ExpiryDate)
		})
	}
}

func (s *ServiceSuite) TestMarkPlanAsPaid_InvalidPlanName() {
	_, err := s.service.MarkPlanAsPaid(context.Background(), "op-1", "user-1", models.PlanName("Platinum"), "comp")
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeInvalidPlanName),
		"expected invalid_plan_name for an unknown plan")

	purchases, err := s.store.ListByUser(context.Background(), "user-1")
	require.NoError(s.T(), err)
	assert.Empty(s.T(), purchases, "refused grants must not write")
}

// TestMarkPlanAsPaid_ActivePlanRefused verifies the gate runs before any
// write: a user with an unexpired plan cannot be granted a second one.
func (s *ServiceSuite) TestMarkPlanAsPaid_ActivePlanRefused() {
	_, err := s.service.MarkPlanAsPaid(context.Background(), "op-1", "user-1", models.PlanBasic, "comp")
	require.NoError(s.T(), err)

	_, err = s.service.MarkPlanAsPaid(context.Background(), "op-1", "user-1", models.PlanQuarterly, "upgrade attempt")
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeAlreadyHasPlan))

	purchases, err := s.store.ListByUser(context.Background(), "user-1")
	require.NoError(s.T(), err)
	assert.Len(s.T(), purchases, 1, "the refused grant must not have written")
}

// TestMarkPlanAsPaid_ExpiredPlanAllowsRegrant verifies that expiry is
// strictly-future: a plan expiring exactly now no longer blocks a grant.
func (s *ServiceSuite) TestMarkPlanAsPaid_ExpiredPlanAllowsRegrant() {
	_, err := s.service.MarkPlanAsPaid(context.Background(), "op-1", "user-1", models.PlanBasic, "first")
	require.NoError(s.T(), err)

	// Advance the clock to the first plan's exact expiry instant.
	s.now = s.now.Add(30 * 24 * time.Hour)

	purchase, err := s.service.MarkPlanAsPaid(context.Background(), "op-1", "user-1", models.PlanUpgrade, "renewal")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.PlanUpgrade, purchase.Plan)
}

func (s *ServiceSuite) TestMarkPlanAsPaid_EmitsAudit() {
	_, err := s.service.MarkPlanAsPaid(context.Background(), "op-7", "user-1", models.PlanQuarterly, "goodwill gesture")
	require.NoError(s.T(), err)

	events := s.sink.Events()
	require.Len(s.T(), events, 1)
	assert.Equal(s.T(), audit.ActionPlanGranted, events[0].Action)
	assert.Equal(s.T(), "op-7", events[0].OperatorID)
	assert.Equal(s.T(), string(models.PlanQuarterly), events[0].Detail)
	assert.Equal(s.T(), "goodwill gesture", events[0].Notes)
}

func (s *ServiceSuite) TestHasActivePlan() {
	active, err := s.service.HasActivePlan(context.Background(), "user-1")
	require.NoError(s.T(), err)
	assert.False(s.T(), active)

	_, err = s.service.MarkPlanAsPaid(context.Background(), "op-1", "user-1", models.PlanBasic, "comp")
	require.NoError(s.T(), err)

	active, err = s.service.HasActivePlan(context.Background(), "user-1")
	require.NoError(s.T(), err)
	assert.True(s.T(), active)
}
