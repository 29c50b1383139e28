package handlers

import (
	"net/http"

	"github.com/dxwatch/dxwatch/internal/httpserver/deps"
)

// ClusterStatus serves GET /api/status with the aggregated connection
// and cache snapshot.
func ClusterStatus(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Reporter.Snapshot())
	}
}
