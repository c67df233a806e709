// Package httptransport assembles the service router. Handlers stay thin and
// delegate to domain services; transport concerns live here.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	compliancehandler "cleargate/internal/compliance/handler"
	"cleargate/pkg/platform/middleware/auth"
	"cleargate/pkg/platform/middleware/metadata"
)

// NewRouter wires all endpoints. When jwtSigningKey is empty the API runs
// unauthenticated, which is the expected mode behind a trusted gateway.
func NewRouter(h *compliancehandler.Handler, jwtSigningKey string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(metadata.Annotate)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if jwtSigningKey != "" {
			r.Use(auth.RequireAuth(jwtSigningKey, logger))
		}
		h.Register(r)
	})

	return r
}
