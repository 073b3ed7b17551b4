package httpapi

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	now := time.Now().UTC().Format(time.RFC3339)
	if err := a.store.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:    "ERROR",
			Database:  "Disconnected",
			Timestamp: now,
		})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "OK",
		Database:  "Connected",
		Timestamp: now,
	})
}
