package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"amoria/internal/billing/models"
	"amoria/internal/platform/middleware"
	"amoria/internal/transport/http/shared"
	respond "amoria/internal/transport/http/shared/json"
	dErrors "amoria/pkg/domain-errors"
	"amoria/pkg/validation"
)

// Service defines the interface for billing operations.
type Service interface {
	MarkPlanAsPaid(ctx context.Context, operatorID, userID string, plan models.PlanName, notes string) (*models.Purchase, error)
	ListPurchases(ctx context.Context, userID string) ([]*models.Purchase, error)
}

// Handler handles billing endpoints.
type Handler struct {
	logger  *slog.Logger
	billing Service
}

// New creates a new billing Handler.
func New(billing Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		billing: billing,
	}
}

// Register registers the billing routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/admin/users/{userID}/plan/mark-paid", h.handleMarkPlanPaid)
	r.Get("/admin/users/{userID}/purchases", h.handleListPurchases)
}

func (h *Handler) handleMarkPlanPaid(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "userID")
	operatorID := middleware.GetOperatorID(ctx)

	var req models.GrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := validation.Validate(&req); err != nil {
		shared.WriteError(w, err)
		return
	}

	purchase, err := h.billing.MarkPlanAsPaid(ctx, operatorID, userID, req.PlanName, req.Notes)
	if err != nil {
		h.logger.WarnContext(ctx, "plan override failed",
			"request_id", middleware.GetRequestID(ctx),
			"user_id", userID,
			"plan", req.PlanName,
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}

	respond.WriteData(w, http.StatusOK, purchase)
}

func (h *Handler) handleListPurchases(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "userID")

	purchases, err := h.billing.ListPurchases(ctx, userID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteData(w, http.StatusOK, purchases)
}
