package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/dxwatch/dxwatch/internal/httpserver/deps"
	"github.com/dxwatch/dxwatch/internal/httpserver/handlers"
)

func init() { Register(registerSpots) }

func registerSpots(r chi.Router, d deps.Deps) {
	r.Route("/api/spots", func(r chi.Router) {
		r.Get("/recent", handlers.RecentSpots(d))
		r.Get("/search", handlers.SearchCallsign(d))
		r.Get("/frequency", handlers.SearchFrequency(d))
		r.Get("/band/{band}", handlers.BandSpots(d))
	})
}
