package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"amoria/internal/platform/middleware"
	"amoria/internal/screening/models"
	"amoria/internal/transport/http/shared"
	respond "amoria/internal/transport/http/shared/json"
	dErrors "amoria/pkg/domain-errors"
	"amoria/pkg/validation"
)

// Service defines the interface for screening operations.
type Service interface {
	TriggerSearch(ctx context.Context, operatorID, userID string) (*models.SearchResult, error)
	SelectPerson(ctx context.Context, operatorID, checkID string, index int) (*models.PersonCandidate, error)
	SelectPersonManual(ctx context.Context, operatorID, checkID string, index int) (string, error)
	CheckReport(ctx context.Context, reportToken, checkID string) (*models.BackgroundReport, error)
	GetHistory(ctx context.Context, userID string) ([]models.HistoryEntry, error)
}

// Handler handles screening endpoints.
type Handler struct {
	logger    *slog.Logger
	screening Service
}

// New creates a new screening Handler.
func New(screening Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:    logger,
		screening: screening,
	}
}

// Register registers the screening routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/admin/users/{userID}/background-check/search", h.handleTriggerSearch)
	r.Get("/admin/users/{userID}/background-checks", h.handleGetHistory)
	r.Post("/admin/background-check/select-person", h.handleSelectPerson)
	r.Post("/admin/background-check/manual-verify/select-person", h.handleSelectPersonManual)
	r.Post("/admin/background-check/report", h.handleCheckReport)
}

func (h *Handler) handleTriggerSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "userID")
	operatorID := middleware.GetOperatorID(ctx)

	result, err := h.screening.TriggerSearch(ctx, operatorID, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "person search failed",
			"request_id", middleware.GetRequestID(ctx),
			"user_id", userID,
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}

	respond.WriteData(w, http.StatusOK, result)
}

func (h *Handler) handleSelectPerson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	operatorID := middleware.GetOperatorID(ctx)

	req, ok := h.decodeSelectRequest(w, r)
	if !ok {
		return
	}

	selected, err := h.screening.SelectPerson(ctx, operatorID, req.CheckID, *req.SelectedPersonIndex)
	if err != nil {
		h.logger.WarnContext(ctx, "person selection failed",
			"request_id", middleware.GetRequestID(ctx),
			"check_id", req.CheckID,
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}

	respond.WriteData(w, http.StatusOK, models.SelectPersonResponse{SelectedPerson: *selected})
}

func (h *Handler) handleSelectPersonManual(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	operatorID := middleware.GetOperatorID(ctx)

	req, ok := h.decodeSelectRequest(w, r)
	if !ok {
		return
	}

	message, err := h.screening.SelectPersonManual(ctx, operatorID, req.CheckID, *req.SelectedPersonIndex)
	if err != nil {
		h.logger.WarnContext(ctx, "manual-verify selection failed",
			"request_id", middleware.GetRequestID(ctx),
			"check_id", req.CheckID,
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}

	respond.WriteMessage(w, http.StatusOK, message)
}

func (h *Handler) handleCheckReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CheckReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := validation.Validate(&req); err != nil {
		shared.WriteError(w, err)
		return
	}

	report, err := h.screening.CheckReport(ctx, req.ReportToken, req.CheckID)
	if err != nil {
		h.logger.WarnContext(ctx, "background report fetch failed",
			"request_id", middleware.GetRequestID(ctx),
			"check_id", req.CheckID,
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}

	respond.WriteData(w, http.StatusOK, report)
}

func (h *Handler) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "userID")

	entries, err := h.screening.GetHistory(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "background check history failed",
			"request_id", middleware.GetRequestID(ctx),
			"user_id", userID,
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}

	respond.WriteData(w, http.StatusOK, models.HistoryResponse{BackgroundChecks: entries})
}

func (h *Handler) decodeSelectRequest(w http.ResponseWriter, r *http.Request) (models.SelectPersonRequest, bool) {
	var req models.SelectPersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return req, false
	}
	if err := validation.Validate(&req); err != nil {
		shared.WriteError(w, err)
		return req, false
	}
	return req, true
}
