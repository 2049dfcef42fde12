package adminclient

import (
	"encoding/json"
	"time"
)

// PersonCandidate is one row in a search batch. Fields the upstream provider
// could not establish arrive as null and are surfaced as nil pointers.
type PersonCandidate struct {
	ReportToken string  `json:"reportToken"`
	Name        *string `json:"name"`
	DateOfBirth *string `json:"dateOfBirth"`
	Age         *string `json:"age"`
	Gender      *string `json:"gender"`
	Address     string  `json:"address"`
	Phone       string  `json:"phone"`
	Email       string  `json:"email"`
	Score       float64 `json:"score"`

	// Details is kept raw: the detail payload is display-only and its shape
	// evolves with the provider.
	Details json.RawMessage `json:"details"`
}

// SearchResult is a search batch as returned by the backend. The order of
// People is authoritative; callers submit indexes into this exact sequence.
type SearchResult struct {
	People            []PersonCandidate `json:"people"`
	CheckID           string            `json:"checkId"`
	Source            string            `json:"source"`
	RequiresSelection bool              `json:"requiresSelection"`
	Message           string            `json:"message"`
}

// BackgroundReport is the expanded detail report for one candidate.
type BackgroundReport struct {
	ReportToken   string          `json:"reportToken"`
	CheckID       string          `json:"checkId"`
	Names         json.RawMessage `json:"names"`
	Addresses     json.RawMessage `json:"addresses"`
	Relationships json.RawMessage `json:"relationships"`
	RetrievedAt   time.Time       `json:"retrievedAt"`
}

// HistoryEntry summarizes one past search batch.
type HistoryEntry struct {
	CheckID        string    `json:"checkId"`
	Source         string    `json:"source"`
	CandidateCount int       `json:"candidateCount"`
	Finalized      bool      `json:"finalized"`
	CreatedAt      time.Time `json:"createdAt"`
}

// VerificationState is the per-user background verification record.
type VerificationState struct {
	UserID    string    `json:"userId"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Purchase is a granted subscription plan.
type Purchase struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Plan       string    `json:"plan"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes"`
	GrantedAt  time.Time `json:"grantedAt"`
	ExpiryDate time.Time `json:"expiryDate"`
}

type loginResponse struct {
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expires_at"`
	OperatorID string    `json:"operator_id"`
	Name       string    `json:"name"`
}

type selectPersonRequest struct {
	CheckID             string `json:"checkId"`
	SelectedPersonIndex int    `json:"selectedPersonIndex"`
}

type selectPersonResponse struct {
	SelectedPerson PersonCandidate `json:"selectedPerson"`
}

type historyResponse struct {
	BackgroundChecks []HistoryEntry `json:"backgroundChecks"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Code    string          `json:"code,omitempty"`
}
