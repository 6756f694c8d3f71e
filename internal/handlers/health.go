package handlers

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// HealthCheck pings one dependency
type HealthCheck func(ctx context.Context) error

// HealthHandler reports whether the service's dependencies respond
type HealthHandler struct {
	checks  map[string]HealthCheck
	timeout time.Duration
}

// NewHealthHandler creates a health handler running checks by name
func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 2 * time.Second}
}

// HealthResponse is the body of GET /healthz
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Health runs every check concurrently and answers 503 if any fails
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	errs := make([]error, len(h.checks))

	var g errgroup.Group
	i := 0
	for name, check := range h.checks {
		names = append(names, name)
		idx, check := i, check
		g.Go(func() error {
			errs[idx] = check(ctx)
			return nil
		})
		i++
	}
	g.Wait()

	resp := HealthResponse{Status: "ok", Checks: make(map[string]string, len(names))}
	for idx, name := range names {
		if errs[idx] != nil {
			resp.Status = "unavailable"
			resp.Checks[name] = errs[idx].Error()
			continue
		}
		resp.Checks[name] = "ok"
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}
