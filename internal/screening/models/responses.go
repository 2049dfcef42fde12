package models

import "time"

// SelectPersonResponse returns the persisted candidate in full, since the
// backend may enrich or normalize it during persistence.
type SelectPersonResponse struct {
	SelectedPerson PersonCandidate `json:"selectedPerson"`
}

// HistoryEntry summarizes one past search batch for a user.
type HistoryEntry struct {
	CheckID        string    `json:"checkId"`
	Source         Source    `json:"source"`
	CandidateCount int       `json:"candidateCount"`
	Finalized      bool      `json:"finalized"`
	CreatedAt      time.Time `json:"createdAt"`
}

// HistoryResponse lists past searches, newest first.
type HistoryResponse struct {
	BackgroundChecks []HistoryEntry `json:"backgroundChecks"`
}
