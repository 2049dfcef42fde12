package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Checker reports whether a dependency is reachable.
type Checker interface {
	Health(ctx context.Context) error
}

// Handler serves liveness and readiness probes.
type Handler struct {
	checks map[string]Checker
}

// New constructs a health handler with named dependency checks.
// Nil checkers are skipped so optional dependencies stay optional.
func New(checks map[string]Checker) *Handler {
	filtered := make(map[string]Checker, len(checks))
	for name, check := range checks {
		if check != nil {
			filtered[name] = check
		}
	}
	return &Handler{checks: filtered}
}

// Live always reports success while the process is up.
func (h *Handler) Live(w http.ResponseWriter, _ *http.Request) {
	writeStatus(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports per-dependency status and 503 when any check fails.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check.Health(ctx); err != nil {
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	writeStatus(w, status, results)
}

func writeStatus(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
