package models

// UserProfile carries the stored profile fields a person search is derived
// from. Operators never supply criteria directly.
type UserProfile struct {
	UserID      string
	FirstName   string
	LastName    string
	DateOfBirth string
	City        string
	State       string
}

// SearchCriteria is the derived upstream query for one user.
type SearchCriteria struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
}

// Criteria derives the upstream search query from the stored profile.
func (p UserProfile) Criteria() SearchCriteria {
	return SearchCriteria{
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		DateOfBirth: p.DateOfBirth,
		City:        p.City,
		State:       p.State,
	}
}
