package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"amoria/internal/audit"
	"amoria/internal/screening/cache"
	"amoria/internal/screening/metrics"
	"amoria/internal/screening/models"
	"amoria/internal/screening/store"
	dErrors "amoria/pkg/domain-errors"
	"amoria/pkg/platform/sentinel"
)

// Lookup is the upstream person-search provider boundary.
// Error Contract:
// - SearchPerson surfaces transport failures unchanged; no retry happens here
// - FetchReport returns CodeNotFound for expired report tokens
type Lookup interface {
	SearchPerson(ctx context.Context, criteria models.SearchCriteria) (*models.SearchResult, error)
	FetchReport(ctx context.Context, reportToken string) (*models.BackgroundReport, error)
}

// Option configures the Service.
type Option func(*Service)

// Service coordinates person-record searches, candidate selection, and
// report expansion.
type Service struct {
	store    store.Store
	profiles store.ProfileStore
	lookup   Lookup
	reports  *cache.Reports
	auditor  *audit.Publisher
	metrics  *metrics.Metrics
	logger   *slog.Logger

	// manualSearchEnabled gates operator-triggered searches. The automated
	// pipeline runs on profile update instead; while off, the endpoint stays
	// registered and reports "not available".
	manualSearchEnabled bool
}

// NewService wires the screening service.
func NewService(st store.Store, profiles store.ProfileStore, lookup Lookup, auditor *audit.Publisher, logger *slog.Logger, opts ...Option) *Service {
	svc := &Service{
		store:    st,
		profiles: profiles,
		lookup:   lookup,
		auditor:  auditor,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithReportCache sets the background-report cache.
func WithReportCache(c *cache.Reports) Option {
	return func(s *Service) {
		s.reports = c
	}
}

// WithManualSearch enables operator-triggered searches.
func WithManualSearch(enabled bool) Option {
	return func(s *Service) {
		s.manualSearchEnabled = enabled
	}
}

// TriggerSearch runs a person lookup for the given user. Criteria are
// derived server-side from the stored profile; the operator supplies only
// the user ID. The search call itself is never retried locally - every
// upstream call may be billable.
func (s *Service) TriggerSearch(ctx context.Context, operatorID, userID string) (*models.SearchResult, error) {
	if userID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user ID is required")
	}
	if !s.manualSearchEnabled {
		return nil, dErrors.New(dErrors.CodeFeatureDisabled, "manual person search is not available")
	}
	if s.lookup == nil {
		return nil, dErrors.New(dErrors.CodeUpstreamUnavailable, "person lookup provider not configured")
	}

	profile, err := s.profiles.FindProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user profile not found")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to read user profile", err)
	}

	start := time.Now()
	result, err := s.lookup.SearchPerson(ctx, profile.Criteria())
	if err != nil {
		// Surfaced unchanged: the caller decides how to present it.
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveUpstreamLatency(time.Since(start).Seconds())
		s.metrics.ObserveCandidates(float64(len(result.People)))
	}

	result.CheckID = fmt.Sprintf("check_%s", uuid.New().String())
	batch := &models.SearchBatch{
		CheckID:   result.CheckID,
		UserID:    userID,
		Source:    result.Source,
		People:    result.People,
		Message:   result.Message,
		CreatedAt: time.Now(),
	}
	if err := s.store.SaveBatch(ctx, batch); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to save search batch", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementSearches(string(result.Source))
	}
	s.emitAudit(ctx, audit.Event{
		OperatorID: operatorID,
		UserID:     userID,
		Action:     audit.ActionSearchTriggered,
		CheckID:    result.CheckID,
		Detail:     fmt.Sprintf("%d candidates", len(result.People)),
		Timestamp:  time.Now(),
	})
	return result, nil
}

// SelectPerson commits the operator's candidate choice for the search flow.
// The index refers to the original candidate sequence stored under checkID;
// a second finalization for the same check is a conflict, surfaced to the
// operator rather than silently absorbed.
func (s *Service) SelectPerson(ctx context.Context, operatorID, checkID string, index int) (*models.PersonCandidate, error) {
	selected, batch, err := s.commitSelection(ctx, checkID, index)
	if err != nil {
		return nil, err
	}

	s.emitAudit(ctx, audit.Event{
		OperatorID: operatorID,
		UserID:     batch.UserID,
		Action:     audit.ActionPersonSelected,
		CheckID:    checkID,
		Detail:     fmt.Sprintf("index %d", index),
		Timestamp:  time.Now(),
	})
	return selected, nil
}

// SelectPersonManual commits a choice via the manual-verify flow. It shares
// the commit path with SelectPerson but answers with a confirmation message
// instead of the candidate payload.
func (s *Service) SelectPersonManual(ctx context.Context, operatorID, checkID string, index int) (string, error) {
	selected, batch, err := s.commitSelection(ctx, checkID, index)
	if err != nil {
		return "", err
	}

	s.emitAudit(ctx, audit.Event{
		OperatorID: operatorID,
		UserID:     batch.UserID,
		Action:     audit.ActionPersonSelected,
		CheckID:    checkID,
		Detail:     fmt.Sprintf("index %d (manual verify)", index),
		Timestamp:  time.Now(),
	})
	return fmt.Sprintf("Person record confirmed: %s", selected.Name.Or("unnamed candidate")), nil
}

func (s *Service) commitSelection(ctx context.Context, checkID string, index int) (*models.PersonCandidate, *models.SearchBatch, error) {
	if checkID == "" {
		return nil, nil, dErrors.New(dErrors.CodeBadRequest, "check ID is required")
	}

	batch, err := s.store.FindByCheckID(ctx, checkID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil, dErrors.New(dErrors.CodeNotFound, "search not found or expired; run the search again")
		}
		return nil, nil, dErrors.Wrap(dErrors.CodeInternal, "failed to read search batch", err)
	}
	if index < 0 || index >= len(batch.People) {
		s.incrementSelections("invalid_index")
		return nil, nil, dErrors.New(dErrors.CodeBadRequest, "selected person index out of range")
	}
	if batch.Finalized() {
		s.incrementSelections("conflict")
		return nil, nil, dErrors.New(dErrors.CodeAlreadySelected, "a person was already selected for this check")
	}

	updated, err := s.store.FinalizeSelection(ctx, checkID, index, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrConflict):
			s.incrementSelections("conflict")
			return nil, nil, dErrors.New(dErrors.CodeAlreadySelected, "a person was already selected for this check")
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, nil, dErrors.New(dErrors.CodeNotFound, "search not found or expired; run the search again")
		default:
			s.incrementSelections("error")
			return nil, nil, dErrors.Wrap(dErrors.CodeInternal, "failed to finalize selection", err)
		}
	}

	s.incrementSelections("committed")
	selected := updated.People[index]
	return &selected, updated, nil
}

// CheckReport expands one candidate into a full report. The token must
// belong to a candidate of the given check; reports are cached so repeated
// views stay free.
func (s *Service) CheckReport(ctx context.Context, reportToken, checkID string) (*models.BackgroundReport, error) {
	if reportToken == "" || checkID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "report token and check ID are required")
	}

	batch, err := s.store.FindByCheckID(ctx, checkID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "search not found or expired; run the search again")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to read search batch", err)
	}
	if !batchContainsToken(batch, reportToken) {
		return nil, dErrors.New(dErrors.CodeBadRequest, "report token does not belong to this check")
	}

	cached, err := s.reports.Get(ctx, reportToken)
	if err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "report cache read failed", "error", err)
	}
	if cached != nil {
		if s.metrics != nil {
			s.metrics.IncrementReportFetches("hit")
		}
		return cached, nil
	}

	if s.lookup == nil {
		return nil, dErrors.New(dErrors.CodeUpstreamUnavailable, "person lookup provider not configured")
	}
	report, err := s.lookup.FetchReport(ctx, reportToken)
	if err != nil {
		return nil, err
	}
	report.CheckID = checkID
	if err := s.reports.Put(ctx, report); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "report cache write failed", "error", err)
	}
	if s.metrics != nil {
		s.metrics.IncrementReportFetches("miss")
	}
	return report, nil
}

// GetHistory lists past search batches for a user, newest first.
func (s *Service) GetHistory(ctx context.Context, userID string) ([]models.HistoryEntry, error) {
	if userID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user ID is required")
	}
	batches, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to list search history", err)
	}

	entries := make([]models.HistoryEntry, 0, len(batches))
	for _, batch := range batches {
		entries = append(entries, models.HistoryEntry{
			CheckID:        batch.CheckID,
			Source:         batch.Source,
			CandidateCount: len(batch.People),
			Finalized:      batch.Finalized(),
			CreatedAt:      batch.CreatedAt,
		})
	}
	return entries, nil
}

func batchContainsToken(batch *models.SearchBatch, reportToken string) bool {
	for _, candidate := range batch.People {
		if candidate.ReportToken == reportToken {
			return true
		}
	}
	return false
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	s.auditor.Emit(ctx, event)
}

func (s *Service) incrementSelections(outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementSelections(outcome)
	}
}
