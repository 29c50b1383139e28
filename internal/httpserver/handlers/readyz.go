package handlers

import (
	"net/http"

	"github.com/dxwatch/dxwatch/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready bool   `json:"ready"`
	State string `json:"state"`
}

// Readyz reports readiness. The process serves queries from the cache
// whether or not the cluster session is up, so only a stopped manager
// makes it unready.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := d.Reporter.Snapshot()
		ready := snap.State != "stopped"

		code := http.StatusOK
		if !ready {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, readyzResponse{Ready: ready, State: snap.State})
	}
}
