package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"amoria/internal/operator/models"
	"amoria/internal/platform/middleware"
	"amoria/internal/transport/http/shared"
	respond "amoria/internal/transport/http/shared/json"
	dErrors "amoria/pkg/domain-errors"
	"amoria/pkg/validation"
)

// Service defines the interface for operator authentication.
type Service interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
}

// Handler handles the login endpoint.
type Handler struct {
	logger   *slog.Logger
	operator Service
}

// New creates a new operator Handler.
func New(operator Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:   logger,
		operator: operator,
	}
}

// Register registers the public operator routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/admin/login", h.handleLogin)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := validation.Validate(&req); err != nil {
		shared.WriteError(w, err)
		return
	}

	resp, err := h.operator.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "login failed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}

	respond.WriteData(w, http.StatusOK, resp)
}
