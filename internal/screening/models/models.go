package models

import (
	"fmt"
	"time"

	dErrors "amoria/pkg/domain-errors"
)

// Source tags the provenance of a search batch. Display-only.
type Source string

const (
	SourceLocalDatabase Source = "local_database"
	SourceSearchBugAPI  Source = "searchbug_api"
)

// IsValid reports whether the source is a recognized provenance tag.
func (s Source) IsValid() bool {
	switch s {
	case SourceLocalDatabase, SourceSearchBugAPI:
		return true
	}
	return false
}

// PersonCandidate is one candidate identity returned by a person search.
type PersonCandidate struct {
	// ReportToken is the opaque handle required to expand this candidate
	// into a full report.
	ReportToken string `json:"reportToken"`

	Name        Field `json:"name"`
	DateOfBirth Field `json:"dateOfBirth"`
	Age         Field `json:"age"`
	Gender      Field `json:"gender"`

	// Primary/most-recent values.
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`

	// Score is the match confidence (0-100) assigned by the upstream lookup
	// service. Display-only: never used for automatic selection.
	Score float64 `json:"score"`

	Details CandidateDetails `json:"details"`
}

// CandidateDetails carries the nested history collections for one candidate.
// Each sequence keeps the insertion order returned by the source; no dedup
// or sort is applied at this layer.
type CandidateDetails struct {
	Names                []AliasRecord       `json:"names"`
	Addresses            []AddressRecord     `json:"addresses"`
	PhoneNumbers         []PhoneRecord       `json:"phoneNumbers"`
	EmailAddresses       []EmailRecord       `json:"emailAddresses"`
	Relationships        []Relationship      `json:"relationships"`
	CriminalRecords      []CriminalRecord    `json:"criminalRecords"`
	CivilRecords         CivilRecords        `json:"civilRecords"`
	ProfessionalLicenses []License           `json:"professionalLicenses"`
	DriversLicenses      []License           `json:"driversLicenses"`
	VoterRegistrations   []VoterRegistration `json:"voterRegistrations"`
	WatchListRecords     []WatchListRecord   `json:"watchListRecords"`
}

// AliasRecord is one known name with its active-date range.
type AliasRecord struct {
	Name       string `json:"name"`
	ActiveFrom Field  `json:"activeFrom"`
	ActiveTo   Field  `json:"activeTo"`
}

// AddressRecord is one known address with its active-date range.
type AddressRecord struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zipCode"`
	ActiveFrom Field  `json:"activeFrom"`
	ActiveTo   Field  `json:"activeTo"`
}

// PhoneRecord is one known phone number.
type PhoneRecord struct {
	Number   string `json:"number"`
	LineType Field  `json:"lineType"`
}

// EmailRecord is one known email address.
type EmailRecord struct {
	Address string `json:"address"`
}

// Relationship links the candidate to an associated person.
type Relationship struct {
	Name     string `json:"name"`
	Relation Field  `json:"relation"`
}

// CriminalRecord is one criminal history entry. All fields use the sentinel
// normalization: absent values (null or the literal "No") are Known=false.
type CriminalRecord struct {
	Offense     Field `json:"offense"`
	CaseNumber  Field `json:"caseNumber"`
	Court       Field `json:"court"`
	Disposition Field `json:"disposition"`
	OffenseDate Field `json:"offenseDate"`
}

// CivilRecords summarizes civil history as counters. Unknown is distinct
// from known zero.
type CivilRecords struct {
	NumberOfBankruptcies Count `json:"numberOfBankruptcies"`
	NumberOfLiens        Count `json:"numberOfLiens"`
	NumberOfJudgments    Count `json:"numberOfJudgments"`
}

// License is one professional or drivers license entry.
type License struct {
	Type   Field  `json:"type"`
	Number Field  `json:"number"`
	State  string `json:"state"`
}

// VoterRegistration is one voter registration entry.
type VoterRegistration struct {
	State          string `json:"state"`
	RegistrationID Field  `json:"registrationId"`
}

// WatchListRecord is one watch-list match.
type WatchListRecord struct {
	ListName string `json:"listName"`
	Agency   Field  `json:"agency"`
}

// CriminalSummaryClean is the display value for an empty criminal history.
const CriminalSummaryClean = "Clean"

// CriminalSummary returns "Clean" for an empty criminal history and the
// record count otherwise.
func (c PersonCandidate) CriminalSummary() string {
	n := len(c.Details.CriminalRecords)
	if n == 0 {
		return CriminalSummaryClean
	}
	return fmt.Sprintf("%d record%s", n, pluralSuffix(n))
}

func pluralSuffix(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

// SearchResult is the outcome of a person-record search for one user.
type SearchResult struct {
	People []PersonCandidate `json:"people"`

	// CheckID correlates this search batch with a later select-person
	// command. The backend is the source of truth binding CheckID to the
	// exact candidate sequence; callers must never re-sort or filter People
	// before submitting an index.
	CheckID string `json:"checkId"`

	Source Source `json:"source"`

	// RequiresSelection gates whether the operator must make an explicit
	// choice before any record is persisted.
	RequiresSelection bool `json:"requiresSelection"`

	Message string `json:"message"`
}

// Normalize recomputes derived fields after unmarshalling an upstream
// payload. RequiresSelection is true exactly when the search is ambiguous.
func (r *SearchResult) Normalize() {
	r.RequiresSelection = len(r.People) > 1
}

// CandidateAt returns the candidate at the given zero-based position in the
// original sequence.
func (r *SearchResult) CandidateAt(index int) (PersonCandidate, error) {
	if index < 0 || index >= len(r.People) {
		return PersonCandidate{}, dErrors.New(dErrors.CodeBadRequest, "selected person index out of range")
	}
	return r.People[index], nil
}

// SearchBatch is a persisted search with its selection state. One batch per
// CheckID; the candidate order is immutable once stored.
type SearchBatch struct {
	CheckID       string
	UserID        string
	Source        Source
	People        []PersonCandidate
	Message       string
	CreatedAt     time.Time
	SelectedIndex *int
	SelectedAt    *time.Time
}

// Finalized reports whether a selection has already been committed.
func (b *SearchBatch) Finalized() bool {
	return b.SelectedIndex != nil
}

// Result projects the batch back into the search response shape.
func (b *SearchBatch) Result() SearchResult {
	r := SearchResult{
		People:  b.People,
		CheckID: b.CheckID,
		Source:  b.Source,
		Message: b.Message,
	}
	r.Normalize()
	return r
}

// BackgroundReport is the full detail report for one candidate, expanded via
// its report token.
type BackgroundReport struct {
	ReportToken   string          `json:"reportToken"`
	CheckID       string          `json:"checkId"`
	Names         []AliasRecord   `json:"names"`
	Addresses     []AddressRecord `json:"addresses"`
	Relationships []Relationship  `json:"relationships"`
	RetrievedAt   time.Time       `json:"retrievedAt"`
}
