package api

import (
	"github.com/gorilla/mux"
)

// NewRouter builds the HTTP routes. The rate limiter guards the /api
// subtree; /health stays unmetered for probes.
func NewRouter(h *Handler, limiter *Limiter) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.health).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(limiter.Middleware)
	api.HandleFunc("/telemetry/current", h.current).Methods("GET")
	api.HandleFunc("/telemetry/history", h.history).Methods("GET")
	api.HandleFunc("/telemetry/forecast", h.forecast).Methods("GET")
	api.HandleFunc("/alerts", h.alerts).Methods("GET")
	api.HandleFunc("/insights", h.insights).Methods("GET")

	return r
}
