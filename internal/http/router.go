// Package httpapi assembles the HTTP surface: public auth endpoints, the
// authenticated employee routes, and the staff-only management routes.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhandler "kader/internal/auth/handler"
	employeehandler "kader/internal/employee/handler"
	"kader/pkg/platform/httputil"
	authmw "kader/pkg/platform/middleware/auth"
	"kader/pkg/platform/middleware/request"
)

// HealthChecker reports backing-store liveness for /healthz.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps carries everything the router mounts.
type Deps struct {
	Auth      *authhandler.Handler
	Employees *employeehandler.Handler

	TokenValidator    authmw.TokenValidator
	RevocationChecker authmw.RevocationChecker

	// Optional health probes; nil entries are skipped.
	Probes map[string]HealthChecker

	Logger *slog.Logger
}

// NewRouter wires middleware and mounts every endpoint.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(request.Metadata)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", healthHandler(deps.Probes))

	deps.Auth.RegisterPublic(r)

	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth(deps.TokenValidator, deps.RevocationChecker, deps.Logger))
		deps.Auth.Register(r)
		deps.Employees.Register(r)

		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireStaff(deps.Logger))
			deps.Employees.RegisterStaff(r)
		})
	})

	return r
}

func healthHandler(probes map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{"status": "ok"}
		healthy := true
		for name, probe := range probes {
			if probe == nil {
				continue
			}
			if err := probe.Health(r.Context()); err != nil {
				status[name] = err.Error()
				healthy = false
			} else {
				status[name] = "ok"
			}
		}
		if !healthy {
			status["status"] = "degraded"
			httputil.WriteJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, status)
	}
}
