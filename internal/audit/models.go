package audit

import "time"

// Event is emitted from domain logic to capture operator actions. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	Timestamp  time.Time `json:"timestamp"`
	OperatorID string    `json:"operator_id"`
	UserID     string    `json:"user_id"`
	Action     string    `json:"action"`
	Notes      string    `json:"notes,omitempty"`
	CheckID    string    `json:"check_id,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
}

const (
	ActionSearchTriggered     = "person_search_triggered"
	ActionPersonSelected      = "person_selected"
	ActionVerificationPaid    = "background_verification_paid"
	ActionVerificationUpdated = "background_verification_updated"
	ActionPlanGranted         = "plan_granted"
	ActionOperatorLoggedIn    = "operator_logged_in"
)
