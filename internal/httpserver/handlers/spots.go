package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dxwatch/dxwatch/internal/cache"
	"github.com/dxwatch/dxwatch/internal/httpserver/deps"
	"github.com/dxwatch/dxwatch/internal/logger"
)

const defaultRecentCount = 10

// RecentSpots serves GET /api/spots/recent?count=N.
// count defaults to 10; a non-positive or non-numeric count is a
// caller error. The cache clamps the accepted value to its own limit.
func RecentSpots(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := defaultRecentCount
		if raw := r.URL.Query().Get("count"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				writeBadRequest(w, "count must be a positive integer")
				return
			}
			count = n
		}

		writeSpots(w, d.Cache.Recent(count))
	}
}

// SearchCallsign serves GET /api/spots/search?callsign=X with a
// case-insensitive substring match on the DX callsign.
func SearchCallsign(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callsign := strings.TrimSpace(r.URL.Query().Get("callsign"))
		if callsign == "" {
			writeBadRequest(w, "callsign must not be empty")
			return
		}

		d.Logger.Debug("callsign search", logger.String("callsign", callsign))
		writeSpots(w, d.Cache.ByCallsign(callsign))
	}
}

// SearchFrequency serves GET /api/spots/frequency?min_khz=&max_khz=.
func SearchFrequency(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		minKhz, err := parseFloatParam(r, "min_khz")
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}
		maxKhz, err := parseFloatParam(r, "max_khz")
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}

		spots, err := d.Cache.ByFrequencyRange(minKhz, maxKhz)
		if err != nil {
			if errors.Is(err, cache.ErrInvalidQuery) {
				writeBadRequest(w, err.Error())
				return
			}
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "query failed"})
			return
		}

		writeSpots(w, spots)
	}
}

// BandSpots serves GET /api/spots/band/{band}.
func BandSpots(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		band := chi.URLParam(r, "band")

		spots, err := d.Cache.ByBand(band)
		if err != nil {
			if errors.Is(err, cache.ErrInvalidQuery) {
				writeBadRequest(w, err.Error())
				return
			}
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "query failed"})
			return
		}

		writeSpots(w, spots)
	}
}

func parseFloatParam(r *http.Request, name string) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, errors.New(name + " is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New(name + " must be a number")
	}
	return v, nil
}
