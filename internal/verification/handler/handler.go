package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"amoria/internal/platform/middleware"
	"amoria/internal/transport/http/shared"
	respond "amoria/internal/transport/http/shared/json"
	"amoria/internal/verification/models"
	dErrors "amoria/pkg/domain-errors"
	"amoria/pkg/validation"
)

// Service defines the interface for verification operations.
type Service interface {
	Get(ctx context.Context, userID string) (*models.State, error)
	MarkAsPaid(ctx context.Context, operatorID, userID, notes string) (*models.State, error)
	SetVerification(ctx context.Context, operatorID, userID string, target models.Status, notes string) (*models.State, error)
}

// Handler handles verification endpoints.
type Handler struct {
	logger       *slog.Logger
	verification Service
}

// New creates a new verification Handler.
func New(verification Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:       logger,
		verification: verification,
	}
}

// Register registers the verification routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/admin/users/{userID}/background-verification", h.handleGet)
	r.Put("/admin/users/{userID}/background-verification", h.handleUpdate)
	r.Post("/admin/users/{userID}/background-verification/mark-paid", h.handleMarkPaid)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "userID")

	state, err := h.verification.Get(ctx, userID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteData(w, http.StatusOK, state)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "userID")
	operatorID := middleware.GetOperatorID(ctx)

	var req models.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := validation.Validate(&req); err != nil {
		shared.WriteError(w, err)
		return
	}

	state, err := h.verification.SetVerification(ctx, operatorID, userID, req.Status, req.Notes)
	if err != nil {
		h.logger.WarnContext(ctx, "verification update failed",
			"request_id", middleware.GetRequestID(ctx),
			"user_id", userID,
			"target", req.Status,
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}

	respond.WriteData(w, http.StatusOK, state)
}

func (h *Handler) handleMarkPaid(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "userID")
	operatorID := middleware.GetOperatorID(ctx)

	var req models.MarkPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := validation.Validate(&req); err != nil {
		shared.WriteError(w, err)
		return
	}

	state, err := h.verification.MarkAsPaid(ctx, operatorID, userID, req.Notes)
	if err != nil {
		h.logger.WarnContext(ctx, "mark as paid failed",
			"request_id", middleware.GetRequestID(ctx),
			"user_id", userID,
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}

	respond.WriteData(w, http.StatusOK, state)
}
