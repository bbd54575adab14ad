// Package app wires the dashboard together and runs its HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/vadimbarashkov/tinylink-dashboard/internal/adapter/delivery/stubapi"
	"github.com/vadimbarashkov/tinylink-dashboard/internal/adapter/repository/httpapi"
	"github.com/vadimbarashkov/tinylink-dashboard/internal/config"
	"github.com/vadimbarashkov/tinylink-dashboard/internal/usecase"
	"golang.org/x/sync/errgroup"

	dashboard "github.com/vadimbarashkov/tinylink-dashboard/internal/adapter/delivery/http"
)

// NewHandler builds the dashboard handler described by cfg. With the stub
// enabled the in-memory links API is served next to the pages.
func NewHandler(cfg *config.Config, logger *httplog.Logger) (http.Handler, error) {
	const op = "app.NewHandler"

	loc, err := cfg.Display.Location()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	client := httpapi.New(
		cfg.APIBaseURL(),
		httpapi.WithTimeout(cfg.API.Timeout),
		httpapi.WithLogger(logger.Logger),
	)

	pages := dashboard.NewRouter(
		logger,
		client,
		dashboard.WithLocation(loc),
		dashboard.WithViewOptions(
			usecase.WithClickTimeout(cfg.API.ClickTimeout),
			usecase.WithShortURLBase(cfg.ShortURLBase()),
		),
	)

	if !cfg.Stub.Enabled {
		return pages, nil
	}

	store := stubapi.NewStore()

	r := chi.NewRouter()
	r.Mount(config.APIBasePath, stubapi.NewRouter(logger, store))
	r.Mount(config.RedirectBasePath, stubapi.NewRedirectRouter(logger, store))
	r.Mount("/", pages)

	return r, nil
}

// Run serves the dashboard until ctx is done.
func Run(ctx context.Context, cfg *config.Config, logger *httplog.Logger) error {
	const op = "app.Run"

	handler, err := NewHandler(cfg, logger)
	if err != nil {
		return fmt.Errorf("%s: failed to build handler: %w", op, err)
	}

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        handler,
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting dashboard",
			"addr", server.Addr,
			"env", cfg.Env,
			"api", cfg.APIBaseURL(),
			"stub", cfg.Stub.Enabled,
		)

		var err error

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		if err := server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		return nil
	})

	return g.Wait()
}
