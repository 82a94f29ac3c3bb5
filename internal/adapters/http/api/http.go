// Package api declares the dashboard HTTP contracts and route registration.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	app "github.com/Calvinmuemah/ComradeKejani-sub001/internal/app"
	model "github.com/Calvinmuemah/ComradeKejani-sub001/internal/domain/model"
	timeseries "github.com/Calvinmuemah/ComradeKejani-sub001/internal/domain/timeseries"
	view "github.com/Calvinmuemah/ComradeKejani-sub001/internal/view"
	"github.com/Calvinmuemah/ComradeKejani-sub001/pkg/metrics"
)

// Entry mirrors the read shape served by listing queries.
type Entry = app.Entry

// Dependencies bundles what the HTTP handlers need from the engine. Using an
// interface keeps the handler layer loosely coupled to the implementation.
type Dependencies interface {
	// Listings returns the reconciled collection for display.
	Listings(key view.SortKey, dir view.Direction, query string) []Entry

	// Series returns the trend series for a chart range.
	Series(r timeseries.Range) []model.TimePoint

	// Notices returns the active transient notices.
	Notices() []view.Notice

	// Refresh runs a cycle now; false means one was already in flight.
	Refresh(ctx context.Context) bool

	// ConfirmDelete removes a listing after user confirmation.
	ConfirmDelete(ctx context.Context, id string) error

	// GetStats returns engine statistics for monitoring.
	GetStats() map[string]interface{}
}

// Server wires the dashboard HTTP routes.
type Server struct {
	deps Dependencies
}

// NewServer creates an API server over the engine dependencies.
func NewServer(deps Dependencies) *Server {
	return &Server{deps: deps}
}

// Router builds the route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", Metrics("healthz", s.handleHealth))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/listings", Metrics("listings", s.handleListings))
		r.Delete("/listings/{id}", Metrics("delete_listing", s.handleDeleteListing))
		r.Get("/trends", Metrics("trends", s.handleTrends))
		r.Get("/notices", Metrics("notices", s.handleNotices))
		r.Get("/stats", Metrics("stats", s.handleStats))
		r.Post("/refresh", Metrics("refresh", s.handleRefresh))
	})

	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
