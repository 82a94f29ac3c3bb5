package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	app "github.com/Calvinmuemah/ComradeKejani-sub001/internal/app"
	view "github.com/Calvinmuemah/ComradeKejani-sub001/internal/view"
)

// listingsResponse wraps the collection so the shape can grow without
// breaking clients.
type listingsResponse struct {
	Items []Entry `json:"items"`
	Count int     `json:"count"`
}

// handleListings handles GET /v1/listings?sort=&dir=&q=.
func (s *Server) handleListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key, dir, err := view.ParseSort(q.Get("sort"), q.Get("dir"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	entries := s.deps.Listings(key, dir, q.Get("q"))
	writeJSON(w, http.StatusOK, listingsResponse{Items: entries, Count: len(entries)})
}

// handleDeleteListing handles DELETE /v1/listings/{id}. This is the
// confirmed-deletion path; the engine never removes a listing on snapshot
// absence alone.
func (s *Server) handleDeleteListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	if err := s.deps.ConfirmDelete(r.Context(), id); err != nil {
		if errors.Is(err, app.ErrListingNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
