// Package http provides the HTTP delivery layer of the dashboard.
// It mounts a view per request, drives it through the requested action and
// renders the resulting state as an HTML page.
package http

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"
	"github.com/vadimbarashkov/tinylink-dashboard/internal/usecase"
)

type options struct {
	location *time.Location
	viewOpts []usecase.Option
}

// Option configures the dashboard router.
type Option func(*options)

// WithLocation sets the timezone timestamps are displayed in.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithViewOptions sets the options every mounted view is created with.
func WithViewOptions(opts ...usecase.Option) Option {
	return func(o *options) {
		o.viewOpts = append(o.viewOpts, opts...)
	}
}

// NewRouter initializes and returns a new Chi router serving the dashboard pages on top of api.
func NewRouter(logger *httplog.Logger, api usecase.LinkAPI, opts ...Option) *chi.Mux {
	o := options{
		location: time.UTC,
	}
	for _, opt := range opts {
		opt(&o)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	viewOpts := append([]usecase.Option{usecase.WithLogger(logger.Logger)}, o.viewOpts...)
	h := newDashboardHandler(api, viewOpts, o.location)

	r.Get("/healthz", h.health)
	r.Get("/", h.listLinks)

	r.Route("/links", func(r chi.Router) {
		r.Post("/", h.createLink)
		r.Post("/{code}/delete", h.deleteLink)
		r.Post("/{code}/click", h.clickLink)
	})

	r.Route("/code/{code}", func(r chi.Router) {
		r.Get("/", h.linkDetail)
		r.Post("/click", h.clickDetail)
	})

	return r
}
