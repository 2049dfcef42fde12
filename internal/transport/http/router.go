// Package httptransport wires the admin HTTP surface: public login and
// health probes, then every admin route behind bearer auth.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	billinghandler "amoria/internal/billing/handler"
	operatorhandler "amoria/internal/operator/handler"
	"amoria/internal/platform/health"
	"amoria/internal/platform/middleware"
	screeninghandler "amoria/internal/screening/handler"
	verificationhandler "amoria/internal/verification/handler"
)

// Handlers collects the per-domain handlers the router mounts.
type Handlers struct {
	Operator     *operatorhandler.Handler
	Screening    *screeninghandler.Handler
	Verification *verificationhandler.Handler
	Billing      *billinghandler.Handler
	Health       *health.Handler
}

// NewRouter wires all endpoints with the middleware stack.
func NewRouter(h Handlers, validator middleware.TokenValidator, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)

	// Public surface: probes, metrics, login.
	r.Get("/healthz", h.Health.Live)
	r.Get("/readyz", h.Health.Ready)
	r.Handle("/metrics", promhttp.Handler())
	h.Operator.Register(r)

	// Everything under /admin except login requires a valid operator token.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(validator, logger))
		h.Screening.Register(r)
		h.Verification.Register(r)
		h.Billing.Register(r)
	})

	return r
}
