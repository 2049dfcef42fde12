// Package workflow drives the person-selection flow on top of the admin
// client. It owns the modal's state: which candidate is highlighted, how many
// confirm attempts have been spent, and what feedback to show after a
// failure. The backend stays the source of truth for what was committed; this
// package only tracks the operator's in-progress decision.
package workflow

import (
	"context"
	"errors"
	"sync"

	"amoria/pkg/adminclient"
)

//go:generate mockgen -source=workflow.go -destination=mocks/confirmer_mock.go -package=mocks Confirmer

// maxConfirmAttempts caps failed confirmations per selection. The cap exists
// because each confirm may bill upstream; after it is hit the operator must
// re-run the search.
const maxConfirmAttempts = 3

var (
	// ErrNoHighlight means Confirm was called before any candidate was chosen.
	ErrNoHighlight = errors.New("no candidate is highlighted")

	// ErrConfirmInFlight means a confirmation is already running; duplicate
	// submits are dropped rather than queued.
	ErrConfirmInFlight = errors.New("confirmation already in progress")

	// ErrRetriesExhausted means the attempt cap was hit. No request is sent.
	ErrRetriesExhausted = errors.New("confirmation retries exhausted; run the search again")

	// ErrAlreadyConfirmed means this selection already committed a candidate.
	ErrAlreadyConfirmed = errors.New("a candidate has already been confirmed")

	// ErrIndexOutOfRange means the highlight index does not name a candidate.
	ErrIndexOutOfRange = errors.New("candidate index out of range")
)

// Confirmer commits a candidate choice on the backend.
type Confirmer interface {
	SelectPerson(ctx context.Context, checkID string, index int) (*adminclient.PersonCandidate, error)
}

// Attempt tracks confirmation progress for one selection.
type Attempt struct {
	// RetryCount is the number of confirm attempts started so far.
	RetryCount int

	// LastError is the feedback from the most recent failed attempt, nil
	// after a success or before any attempt.
	LastError *Feedback
}

// Selection is the state of one person-selection modal. Candidates keep the
// exact order the search returned; indexes submitted to the backend refer to
// that order.
type Selection struct {
	mu sync.Mutex

	checkID           string
	people            []adminclient.PersonCandidate
	requiresSelection bool

	highlighted int
	attempt     Attempt
	inFlight    bool
	confirmed   *adminclient.PersonCandidate
}

// NewSelection starts a selection for the given search batch. An ambiguous
// batch starts with nothing highlighted; a single-candidate batch highlights
// its only candidate so confirm is immediately available.
func NewSelection(result *adminclient.SearchResult) *Selection {
	people := make([]adminclient.PersonCandidate, len(result.People))
	copy(people, result.People)
	highlighted := -1
	if len(people) == 1 {
		highlighted = 0
	}
	return &Selection{
		checkID:           result.CheckID,
		people:            people,
		requiresSelection: result.RequiresSelection,
		highlighted:       highlighted,
	}
}

// CheckID returns the batch identifier this selection commits against.
func (s *Selection) CheckID() string {
	return s.checkID
}

// People returns the candidates in their authoritative order.
func (s *Selection) People() []adminclient.PersonCandidate {
	out := make([]adminclient.PersonCandidate, len(s.people))
	copy(out, s.people)
	return out
}

// RequiresSelection reports whether the operator must choose before anything
// is persisted. False for unambiguous single-candidate batches.
func (s *Selection) RequiresSelection() bool {
	return s.requiresSelection
}

// Highlight marks the candidate at index as the pending choice. Highlighting
// alone persists nothing.
func (s *Selection) Highlight(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.confirmed != nil {
		return ErrAlreadyConfirmed
	}
	if s.inFlight {
		return ErrConfirmInFlight
	}
	if index < 0 || index >= len(s.people) {
		return ErrIndexOutOfRange
	}
	s.highlighted = index
	return nil
}

// Highlighted returns the pending choice index, or -1 when none is set.
func (s *Selection) Highlighted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.highlighted
}

// Confirmed returns the committed candidate, or nil while undecided.
func (s *Selection) Confirmed() *adminclient.PersonCandidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.confirmed == nil {
		return nil
	}
	copyCandidate := *s.confirmed
	return &copyCandidate
}

// Progress returns the attempt counter and last feedback.
func (s *Selection) Progress() Attempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempt
}

// AttemptsRemaining returns how many confirm attempts are left.
func (s *Selection) AttemptsRemaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	remaining := maxConfirmAttempts - s.attempt.RetryCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CanConfirm reports whether a Confirm call would be admitted right now.
func (s *Selection) CanConfirm() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirmed == nil &&
		!s.inFlight &&
		s.highlighted >= 0 &&
		s.attempt.RetryCount < maxConfirmAttempts
}

// Confirm submits the highlighted candidate to the backend. Exactly one
// confirmation runs at a time; the attempt counter increments when the
// attempt starts, and a call past the cap is rejected locally without
// touching the backend. On failure the classified feedback is recorded and
// the error returned unchanged for the caller.
func (s *Selection) Confirm(ctx context.Context, client Confirmer) (*adminclient.PersonCandidate, error) {
	s.mu.Lock()
	if s.confirmed != nil {
		s.mu.Unlock()
		return nil, ErrAlreadyConfirmed
	}
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrConfirmInFlight
	}
	if s.highlighted < 0 {
		s.mu.Unlock()
		return nil, ErrNoHighlight
	}
	if s.attempt.RetryCount >= maxConfirmAttempts {
		s.mu.Unlock()
		return nil, ErrRetriesExhausted
	}
	s.attempt.RetryCount++
	s.attempt.LastError = nil
	s.inFlight = true
	checkID := s.checkID
	index := s.highlighted
	s.mu.Unlock()

	selected, err := client.SelectPerson(ctx, checkID, index)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if err != nil {
		feedback := Classify(err)
		s.attempt.LastError = &feedback
		return nil, err
	}
	s.confirmed = selected
	return selected, nil
}
