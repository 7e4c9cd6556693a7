package routers

import (
	"dsaprep/internal/handlers"
	"dsaprep/internal/metrics"

	"github.com/go-chi/chi/v5"
)

func HealthRoutes(r *chi.Mux, healthHandler *handlers.HealthHandler) {
	r.Get("/healthz", healthHandler.HealthzHandler)
	r.Get("/readyz", healthHandler.ReadyzHandler)
	r.Handle("/metrics", metrics.Handler())
}
