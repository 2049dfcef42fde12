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
	"amoria/internal/verification/models"
	"amoria/internal/verification/store"
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

// TestGet_ImplicitUnpaid verifies that users without a stored record are
// reported as unpaid rather than not found. Every user has a verification
// state by definition; the store row is created lazily on first transition.
func (s *ServiceSuite) TestGet_ImplicitUnpaid() {
	state, err := s.service.Get(context.Background(), "user-1")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.StatusUnpaid, state.Status)
	assert.Equal(s.T(), "user-1", state.UserID)
}

func (s *ServiceSuite) TestMarkAsPaid_MovesUnpaidToPending() {
	state, err := s.service.MarkAsPaid(context.Background(), "op-1", "user-1", "stripe receipt 123")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.StatusPending, state.Status)
	assert.Equal(s.T(), s.now, state.UpdatedAt)

	events := s.sink.Events()
	require.Len(s.T(), events, 1)
	assert.Equal(s.T(), audit.ActionVerificationPaid, events[0].Action)
	assert.Equal(s.T(), "op-1", events[0].OperatorID)
}

// TestMarkAsPaid_AlreadyPaid verifies the distinguished already_paid code:
// clients pattern-match on it to show a soft warning instead of an error.
func (s *ServiceSuite) TestMarkAsPaid_AlreadyPaid() {
	_, err := s.service.MarkAsPaid(context.Background(), "op-1", "user-1", "first payment")
	require.NoError(s.T(), err)

	_, err = s.service.MarkAsPaid(context.Background(), "op-1", "user-1", "second payment")
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeAlreadyPaid),
		"expected already_paid for a second mark-paid")
}

// TestSetVerification_NotPurchased verifies that approve/reject on an unpaid
// user returns background_check_not_purchased, not a generic conflict.
func (s *ServiceSuite) TestSetVerification_NotPurchased() {
	_, err := s.service.SetVerification(context.Background(), "op-1", "user-1", models.StatusApproved, "looks fine")
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeNotPurchased),
		"expected background_check_not_purchased for unpaid user")
}

func (s *ServiceSuite) TestSetVerification_ApproveAndReset() {
	_, err := s.service.MarkAsPaid(context.Background(), "op-1", "user-1", "paid")
	require.NoError(s.T(), err)

	state, err := s.service.SetVerification(context.Background(), "op-1", "user-1", models.StatusApproved, "record matches")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.StatusApproved, state.Status)

	// Approved can be reset to pending for re-review, but never straight to
	// rejected.
	_, err = s.service.SetVerification(context.Background(), "op-1", "user-1", models.StatusRejected, "changed my mind")
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeConflict))

	state, err = s.service.SetVerification(context.Background(), "op-1", "user-1", models.StatusPending, "re-reviewing")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.StatusPending, state.Status)

	state, err = s.service.SetVerification(context.Background(), "op-1", "user-1", models.StatusRejected, "record mismatch")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.StatusRejected, state.Status)
}

// TestTransitions_RequireNotes verifies the blank-notes guard runs before any
// store write on every mutating path.
func (s *ServiceSuite) TestTransitions_RequireNotes() {
	s.T().Run("mark paid with blank notes", func(t *testing.T) {
		_, err := s.service.MarkAsPaid(context.Background(), "op-1", "user-1", "   ")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.T().Run("set verification with empty notes", func(t *testing.T) {
		_, err := s.service.SetVerification(context.Background(), "op-1", "user-1", models.StatusApproved, "")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	state, err := s.service.Get(context.Background(), "user-1")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.StatusUnpaid, state.Status, "blank-notes attempts must not write")
}

func (s *ServiceSuite) TestSetVerification_UnknownStatus() {
	_, err := s.service.SetVerification(context.Background(), "op-1", "user-1", models.Status("archived"), "notes")
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *ServiceSuite) TestAudit_RecordsTransitionDetail() {
	_, err := s.service.MarkAsPaid(context.Background(), "op-1", "user-1", "paid")
	require.NoError(s.T(), err)
	_, err = s.service.SetVerification(context.Background(), "op-2", "user-1", models.StatusApproved, "all clear")
	require.NoError(s.T(), err)

	events := s.sink.Events()
	require.Len(s.T(), events, 2)
	assert.Equal(s.T(), "unpaid -> pending", events[0].Detail)
	assert.Equal(s.T(), "pending -> approved", events[1].Detail)
}
