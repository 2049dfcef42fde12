package adminclient

import (
	"sync"
	"time"
)

// Session holds the operator's bearer token. It is created by Login,
// invalidated when the backend answers 401, and destroyed by Logout.
type Session struct {
	mu         sync.RWMutex
	token      string
	expiresAt  time.Time
	operatorID string
}

// OperatorID returns the authenticated operator's ID, or "" when the session
// is invalid.
func (s *Session) OperatorID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return ""
	}
	return s.operatorID
}

// Valid reports whether the session still carries an unexpired token.
func (s *Session) Valid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && time.Now().Before(s.expiresAt)
}

func (s *Session) bearerToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) set(token string, expiresAt time.Time, operatorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expiresAt = expiresAt
	s.operatorID = operatorID
}

func (s *Session) invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expiresAt = time.Time{}
}
