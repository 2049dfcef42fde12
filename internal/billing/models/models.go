package models

import "time"

// PlanName is one of the fixed set of grantable subscription plans.
type PlanName string

const (
	PlanBasic     PlanName = "Basic"
	PlanUpgrade   PlanName = "Upgrade"
	PlanQuarterly PlanName = "Quarterly"
)

// IsValid reports whether the plan name is grantable.
func (p PlanName) IsValid() bool {
	switch p {
	case PlanBasic, PlanUpgrade, PlanQuarterly:
		return true
	}
	return false
}

// planDurations is the fixed duration table. Not configurable at runtime.
var planDurations = map[PlanName]time.Duration{
	PlanBasic:     30 * 24 * time.Hour,
	PlanUpgrade:   30 * 24 * time.Hour,
	PlanQuarterly: 90 * 24 * time.Hour,
}

// Duration returns the plan's validity window.
func (p PlanName) Duration() time.Duration {
	return planDurations[p]
}

// PurchaseStatus is the lifecycle state of a purchase record.
type PurchaseStatus string

const (
	PurchaseActive PurchaseStatus = "active"
	PurchaseUnpaid PurchaseStatus = "unpaid"
)

// Purchase is one subscription purchase record for a user.
type Purchase struct {
	ID         string         `json:"id"`
	UserID     string         `json:"userId"`
	Plan       PlanName       `json:"plan"`
	Status     PurchaseStatus `json:"status"`
	Notes      string         `json:"notes"`
	GrantedAt  time.Time      `json:"grantedAt"`
	ExpiryDate time.Time      `json:"expiryDate"`
}

// IsActive reports whether the purchase still covers the given moment.
// A plan is active while its expiry is strictly in the future.
func (p Purchase) IsActive(now time.Time) bool {
	return p.Status == PurchaseActive && p.ExpiryDate.After(now)
}

// GrantRequest is the admin plan override command.
type GrantRequest struct {
	PlanName PlanName `json:"planName" validate:"required"`
	Notes    string   `json:"notes"`
}
