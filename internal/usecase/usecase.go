// Package usecase holds the view-state controllers of the dashboard.
//
// A view is mounted per page, fetches through LinkAPI and exposes a snapshot
// of its state for rendering. Views never share state with each other; the
// links API is the only source of truth.
package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/vadimbarashkov/tinylink-dashboard/internal/entity"
)

const defaultClickTimeout = 5 * time.Second

var (
	// ErrStaleResponse is returned when a response arrives for a request that
	// is no longer the latest one issued by the view.
	ErrStaleResponse = errors.New("stale response discarded")
	// ErrViewClosed is returned when a closed view is asked to fetch.
	ErrViewClosed = errors.New("view closed")
	// ErrLinkNotLoaded is returned when an action needs a loaded link.
	ErrLinkNotLoaded = errors.New("link not loaded")
)

// LinkAPI is the links API as seen by the views.
type LinkAPI interface {
	ListLinks(ctx context.Context) ([]entity.Link, error)
	CreateLink(ctx context.Context, params entity.CreateLinkParams) (*entity.Link, error)
	DeleteLink(ctx context.Context, code string) error
	GetLink(ctx context.Context, code string) (*entity.Link, error)
	ClickLink(ctx context.Context, code string) (*entity.Link, error)
	GetHealth(ctx context.Context) entity.Health
}

type options struct {
	logger       *slog.Logger
	clickTimeout time.Duration
	shortURLBase string
}

// Option configures a view.
type Option func(*options)

// WithLogger sets the logger views report failures to.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClickTimeout bounds the increment call made before a target is opened.
func WithClickTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.clickTimeout = d
		}
	}
}

// WithShortURLBase sets the prefix short links are built from, for example
// https://host/r.
func WithShortURLBase(base string) Option {
	return func(o *options) {
		o.shortURLBase = base
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		clickTimeout: defaultClickTimeout,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
