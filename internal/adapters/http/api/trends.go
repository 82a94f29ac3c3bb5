package api

import (
	"net/http"

	model "github.com/Calvinmuemah/ComradeKejani-sub001/internal/domain/model"
	timeseries "github.com/Calvinmuemah/ComradeKejani-sub001/internal/domain/timeseries"
)

type trendsResponse struct {
	Range  timeseries.Range  `json:"range"`
	Points []model.TimePoint `json:"points"`
}

// handleTrends handles GET /v1/trends?range=24h|7d|30d|all.
func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	rng, err := timeseries.ParseRange(r.URL.Query().Get("range"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	points := s.deps.Series(rng)
	writeJSON(w, http.StatusOK, trendsResponse{Range: rng, Points: points})
}
