// Package token issues and validates bearer tokens for operator sessions.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"amoria/internal/platform/middleware"
	dErrors "amoria/pkg/domain-errors"
)

// AccessTokenClaims carries the operator identity inside the JWT.
type AccessTokenClaims struct {
	OperatorID string `json:"operator_id"`
	jwt.RegisteredClaims
}

// Service signs and validates operator access tokens.
type Service struct {
	signingKey []byte
	tokenTTL   time.Duration
}

// NewService creates a token service with the given signing key and TTL.
func NewService(signingKey string, tokenTTL time.Duration) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		tokenTTL:   tokenTTL,
	}
}

// Issue signs a new access token for the operator. Returns the token string
// and its expiry.
func (s *Service) Issue(operatorID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)
	claims := AccessTokenClaims{
		OperatorID: operatorID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   operatorID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", time.Time{}, dErrors.Wrap(dErrors.CodeInternal, "failed to sign token", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken parses the token and returns the middleware claims.
// Implements middleware.TokenValidator.
func (s *Service) ValidateToken(tokenString string) (*middleware.Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &AccessTokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "unexpected signing method")
		}
		return s.signingKey, nil
	})
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeUnauthorized, "invalid or expired token", err)
	}
	claims, ok := parsed.Claims.(*AccessTokenClaims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return &middleware.Claims{
		OperatorID: claims.OperatorID,
		JTI:        claims.ID,
	}, nil
}
