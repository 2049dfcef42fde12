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
	"amoria/internal/operator/models"
	"amoria/internal/operator/store"
	"amoria/internal/operator/token"
	dErrors "amoria/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	store   *store.InMemoryStore
	sink    *audit.InMemorySink
	tokens  *token.Service
	service *Service
}

func (s *ServiceSuite) SetupTest() {
	s.store = store.New()
	s.sink = audit.NewInMemorySink()
	s.tokens = token.NewService("test-signing-key", time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewService(s.store, s.tokens, audit.NewPublisher(s.sink, logger), logger)

	err := s.service.Register(context.Background(), &models.Operator{
		ID:    "op-1",
		Email: "sam@example.com",
		Name:  "Sam",
	}, "correct horse battery")
	require.NoError(s.T(), err)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) TestLogin_IssuesValidatableToken() {
	resp, err := s.service.Login(context.Background(), "sam@example.com", "correct horse battery")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "op-1", resp.OperatorID)
	assert.True(s.T(), resp.ExpiresAt.After(time.Now()))

	claims, err := s.tokens.ValidateToken(resp.Token)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "op-1", claims.OperatorID)
	assert.NotEmpty(s.T(), claims.JTI)

	events := s.sink.Events()
	require.Len(s.T(), events, 1)
	assert.Equal(s.T(), audit.ActionOperatorLoggedIn, events[0].Action)
}

// TestLogin_UniformRejection verifies wrong password and unknown email return
// the same code and message, so responses do not reveal which accounts exist.
func (s *ServiceSuite) TestLogin_UniformRejection() {
	_, wrongPassword := s.service.Login(context.Background(), "sam@example.com", "wrong password")
	require.Error(s.T(), wrongPassword)
	assert.True(s.T(), dErrors.HasCode(wrongPassword, dErrors.CodeUnauthorized))

	_, unknownEmail := s.service.Login(context.Background(), "nobody@example.com", "correct horse battery")
	require.Error(s.T(), unknownEmail)
	assert.True(s.T(), dErrors.HasCode(unknownEmail, dErrors.CodeUnauthorized))

	assert.Equal(s.T(), wrongPassword.Error(), unknownEmail.Error())
}

func (s *ServiceSuite) TestLogin_CaseInsensitiveEmail() {
	_, err := s.service.Login(context.Background(), "SAM@Example.COM", "correct horse battery")
	assert.NoError(s.T(), err)
}

func (s *ServiceSuite) TestRegister_DuplicateEmail() {
	err := s.service.Register(context.Background(), &models.Operator{
		ID:    "op-2",
		Email: "sam@example.com",
		Name:  "Impostor",
	}, "another password")
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestValidateToken_RejectsTampering() {
	resp, err := s.service.Login(context.Background(), "sam@example.com", "correct horse battery")
	require.NoError(s.T(), err)

	otherKey := token.NewService("different-signing-key", time.Hour)
	_, err = otherKey.ValidateToken(resp.Token)
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeUnauthorized))

	_, err = s.tokens.ValidateToken(resp.Token + "x")
	assert.Error(s.T(), err)
}

func (s *ServiceSuite) TestValidateToken_RejectsExpired() {
	expired := token.NewService("test-signing-key", -time.Minute)
	signed, _, err := expired.Issue("op-1")
	require.NoError(s.T(), err)

	_, err = s.tokens.ValidateToken(signed)
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
