// Package stubapi serves an in-memory implementation of the links API.
// It stands in for the real backend during local development and in
// end-to-end tests of the dashboard.
package stubapi

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
)

// NewRouter returns the links API router backed by store. It is meant to be
// mounted under /api/links.
func NewRouter(logger *httplog.Logger, store *Store) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"POST", "GET", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.AllowContentType("application/json"))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	h := newLinkHandler(store, validator.New())

	r.Get("/healthz", h.health)
	r.Get("/all", h.listLinks)
	r.Post("/", h.createLink)

	r.Route("/{code}", func(r chi.Router) {
		r.Get("/", h.getLink)
		r.Delete("/", h.deleteLink)
		r.Get("/preview", h.previewLink)
		r.Post("/click", h.clickLink)
	})

	return r
}

// NewRedirectRouter returns the router resolving short links. It is meant to
// be mounted under /r.
func NewRedirectRouter(logger *httplog.Logger, store *Store) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	h := &linkHandler{store: store}

	r.Get("/{code}", h.redirect)

	return r
}
