package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vadimbarashkov/tinylink-dashboard/internal/entity"
)

const (
	msgLinkLoadFailed = "Failed to load link"
	msgOpenFailed     = "Failed to open link"
)

// DetailStatus tells which variant a DetailState holds.
type DetailStatus int

const (
	DetailLoading DetailStatus = iota
	DetailLoaded
	DetailNotFound
	DetailFailed
)

func (s DetailStatus) String() string {
	switch s {
	case DetailLoading:
		return "loading"
	case DetailLoaded:
		return "loaded"
	case DetailNotFound:
		return "not found"
	case DetailFailed:
		return "failed"
	default:
		return fmt.Sprintf("DetailStatus(%d)", int(s))
	}
}

// DetailState is a snapshot of the detail view. Link is set only when
// Status is DetailLoaded and Reason only when it is DetailFailed. Error
// reports the last failed action on a loaded link.
type DetailState struct {
	Status DetailStatus
	Code   string
	Link   *entity.Link
	Reason string
	Error  string
}

// DetailView shows a single link and dispatches its click-through.
type DetailView struct {
	api  LinkAPI
	opts options

	mu     sync.Mutex
	state  DetailState
	gen    uint64
	closed bool
}

// NewDetailView mounts a detail view on top of api.
func NewDetailView(api LinkAPI, opts ...Option) *DetailView {
	return &DetailView{
		api:   api,
		opts:  newOptions(opts),
		state: DetailState{Status: DetailLoading},
	}
}

// Load fetches the link with the given code. A response is applied only if
// its request is still the latest one and the view is open; otherwise
// ErrStaleResponse is returned.
func (dv *DetailView) Load(ctx context.Context, code string) error {
	const op = "usecase.DetailView.Load"

	dv.mu.Lock()
	if dv.closed {
		dv.mu.Unlock()
		return fmt.Errorf("%s: %w", op, ErrViewClosed)
	}
	dv.gen++
	gen := dv.gen
	dv.state = DetailState{Status: DetailLoading, Code: code}
	dv.mu.Unlock()

	link, err := dv.api.GetLink(ctx, code)

	dv.mu.Lock()
	defer dv.mu.Unlock()

	if dv.closed || gen != dv.gen {
		return fmt.Errorf("%s: %w", op, ErrStaleResponse)
	}

	switch {
	case err == nil:
		dv.state = DetailState{Status: DetailLoaded, Code: code, Link: link}
		return nil
	case errors.Is(err, entity.ErrLinkNotFound):
		dv.state = DetailState{Status: DetailNotFound, Code: code}
		return fmt.Errorf("%s: %w", op, err)
	default:
		dv.opts.logger.Error("failed to load link", slog.String("op", op), slog.String("code", code), slog.Any("err", err))
		dv.state = DetailState{Status: DetailFailed, Code: code, Reason: msgLinkLoadFailed}
		return fmt.Errorf("%s: failed to get link: %w", op, err)
	}
}

// Click records a click-through on the loaded link and returns the target
// to open. The target is returned only once the increment has succeeded, and
// the displayed link is replaced by the server's updated record.
func (dv *DetailView) Click(ctx context.Context) (string, error) {
	const op = "usecase.DetailView.Click"

	dv.mu.Lock()
	if dv.state.Status != DetailLoaded {
		dv.mu.Unlock()
		return "", fmt.Errorf("%s: %w", op, ErrLinkNotLoaded)
	}
	code := dv.state.Link.Code
	gen := dv.gen
	dv.state.Error = ""
	dv.mu.Unlock()

	clickCtx, cancel := context.WithTimeout(ctx, dv.opts.clickTimeout)
	defer cancel()

	link, err := dv.api.ClickLink(clickCtx, code)

	dv.mu.Lock()
	defer dv.mu.Unlock()

	current := !dv.closed && gen == dv.gen

	if err != nil {
		dv.opts.logger.Error("failed to record click", slog.String("op", op), slog.String("code", code), slog.Any("err", err))

		if current {
			dv.state.Error = msgOpenFailed
		}

		return "", fmt.Errorf("%s: failed to record click: %w", op, err)
	}

	if current {
		dv.state.Link = link
	}

	return link.Target, nil
}

// State returns a snapshot of the view.
func (dv *DetailView) State() DetailState {
	dv.mu.Lock()
	defer dv.mu.Unlock()

	state := dv.state
	if state.Link != nil {
		link := *state.Link
		state.Link = &link
	}

	return state
}

// Close unmounts the view. Responses arriving afterwards are discarded.
func (dv *DetailView) Close() {
	dv.mu.Lock()
	defer dv.mu.Unlock()

	dv.closed = true
}
