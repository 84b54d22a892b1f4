package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires all harness endpoints.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/verify", h.handleVerify)
	r.Get("/steps", h.handleListSteps)
	r.Get("/steps/{id}", h.handleGetStep)

	r.Post("/history/events", h.handleAppendEvent)
	r.Post("/tier/records", h.handleAddTierRecords)

	return r
}
