package models

import "time"

// Status is the background verification lifecycle state.
type Status string

const (
	StatusUnpaid   Status = "unpaid"
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// IsValid reports whether the status is a recognized lifecycle state.
func (s Status) IsValid() bool {
	switch s {
	case StatusUnpaid, StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// State is the per-user background verification record. It is created
// implicitly with every user at unpaid and mutated only through the
// verification service; no other code path writes Status.
type State struct {
	UserID    string    `json:"userId"`
	Status    Status    `json:"status"`
	Notes     string    `json:"notes"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewState returns the implicit initial state for a user.
func NewState(userID string) *State {
	return &State{UserID: userID, Status: StatusUnpaid}
}

// CanTransitionTo enforces the legal transition set:
// unpaid->pending (mark as paid only), pending->approved, pending->rejected,
// and approved|rejected->pending (explicit reset).
func (s *State) CanTransitionTo(target Status) bool {
	switch s.Status {
	case StatusUnpaid:
		return target == StatusPending
	case StatusPending:
		return target == StatusApproved || target == StatusRejected
	case StatusApproved, StatusRejected:
		return target == StatusPending
	}
	return false
}

// UpdateRequest is a state machine transition command.
type UpdateRequest struct {
	Status Status `json:"status" validate:"required,oneof=approved rejected pending"`
	Notes  string `json:"notes" validate:"required,notblank"`
}

// MarkPaidRequest is the unpaid->pending shortcut command.
type MarkPaidRequest struct {
	Notes string `json:"notes" validate:"required,notblank"`
}
