package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/dxwatch/dxwatch/internal/httpserver/deps"
	"github.com/dxwatch/dxwatch/internal/httpserver/handlers"
)

func init() { Register(registerStatus) }

func registerStatus(r chi.Router, d deps.Deps) {
	r.Get("/api/status", handlers.ClusterStatus(d))
}
