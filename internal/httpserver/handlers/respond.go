package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dxwatch/dxwatch/internal/spot"
)

type errorResponse struct {
	Error string `json:"error"`
}

type spotsResponse struct {
	Count int         `json:"count"`
	Spots []spot.Spot `json:"spots"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeBadRequest reports a caller validation error. Distinct from an
// empty result: bad input never comes back as count 0.
func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func writeSpots(w http.ResponseWriter, spots []spot.Spot) {
	writeJSON(w, http.StatusOK, spotsResponse{Count: len(spots), Spots: spots})
}
