package api

import (
	"net/http"

	view "github.com/Calvinmuemah/ComradeKejani-sub001/internal/view"
)

type noticesResponse struct {
	Notices []view.Notice `json:"notices"`
}

// handleNotices handles GET /v1/notices.
func (s *Server) handleNotices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, noticesResponse{Notices: s.deps.Notices()})
}
