package api

import (
	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with the graph routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
func NewRouter(src Source, authEnabled bool, token string) chi.Router {
	h := NewHandler(src)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Get("/graph", h.Graph)
	r.Head("/graph", h.Graph)
	r.Get("/graph/stats", h.Stats)

	return r
}
