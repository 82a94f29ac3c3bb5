package api

import (
	"net/http"
)

// handleRefresh handles POST /v1/refresh. A refresh that lands while a cycle
// is in flight is reported, not queued; the outstanding cycle's result is as
// fresh as a new one would be.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if s.deps.Refresh(r.Context()) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "in_flight"})
}
