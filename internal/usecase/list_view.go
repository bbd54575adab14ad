package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/vadimbarashkov/tinylink-dashboard/internal/entity"
	"golang.org/x/sync/errgroup"
)

// HealthStatusLoading is reported until the first health check resolves.
const HealthStatusLoading = "loading"

const (
	msgLoadFailed   = "Failed to load links"
	msgCreateFailed = "Failed to create link"
	msgCodeExists   = "Code already exists"
	msgDeleteFailed = "Delete failed"
	msgCreated      = "Short link created and copied to clipboard!"
)

// ListState is a snapshot of the list view.
type ListState struct {
	Links       []entity.Link
	Loading     bool
	Target      string // Target is the create form's URL field.
	Code        string // Code is the create form's optional code field.
	FormLoading bool
	Error       string
	Notice      string
	Created     *entity.Link // Created is the link made by the last successful create.
	Health      entity.Health
}

// ListView lists links, hosts the create form and dispatches delete and
// click-through actions.
type ListView struct {
	api  LinkAPI
	opts options

	mu     sync.Mutex
	state  ListState
	gen    uint64
	closed bool
}

// NewListView mounts a list view on top of api.
func NewListView(api LinkAPI, opts ...Option) *ListView {
	return &ListView{
		api:  api,
		opts: newOptions(opts),
		state: ListState{
			Links:  []entity.Link{},
			Health: entity.Health{Status: HealthStatusLoading},
		},
	}
}

// Load fetches the links and checks the API health. Both run concurrently
// and the failure of one does not affect the other. The returned error only
// reports the list fetch.
func (lv *ListView) Load(ctx context.Context) error {
	var g errgroup.Group

	g.Go(func() error {
		return lv.refresh(ctx)
	})

	g.Go(func() error {
		lv.CheckHealth(ctx)
		return nil
	})

	return g.Wait()
}

// CheckHealth refreshes the API health badge. It never fails.
func (lv *ListView) CheckHealth(ctx context.Context) {
	health := lv.api.GetHealth(ctx)

	lv.mu.Lock()
	defer lv.mu.Unlock()

	if !lv.closed {
		lv.state.Health = health
	}
}

// refresh replaces the links with the server's list. Only the response of
// the latest fetch is applied.
func (lv *ListView) refresh(ctx context.Context) error {
	const op = "usecase.ListView.refresh"

	lv.mu.Lock()
	if lv.closed {
		lv.mu.Unlock()
		return fmt.Errorf("%s: %w", op, ErrViewClosed)
	}
	lv.gen++
	gen := lv.gen
	lv.state.Loading = true
	lv.mu.Unlock()

	links, err := lv.api.ListLinks(ctx)

	lv.mu.Lock()
	defer lv.mu.Unlock()

	if lv.closed || gen != lv.gen {
		return fmt.Errorf("%s: %w", op, ErrStaleResponse)
	}

	lv.state.Loading = false

	if err != nil {
		lv.opts.logger.Error("failed to load links", slog.String("op", op), slog.Any("err", err))
		lv.state.Error = msgLoadFailed
		return fmt.Errorf("%s: failed to list links: %w", op, err)
	}

	if links == nil {
		links = []entity.Link{}
	}
	lv.state.Links = links

	return nil
}

// Create validates the form input and creates a link. On success the link
// is prepended to the list without a re-fetch. On failure the list goes back
// to its state before the call unless a newer fetch landed meanwhile, and
// Error describes the problem.
func (lv *ListView) Create(ctx context.Context, target, code string) (*entity.Link, error) {
	const op = "usecase.ListView.Create"

	target = strings.TrimSpace(target)
	code = strings.TrimSpace(code)

	lv.mu.Lock()
	lv.state.Target = target
	lv.state.Code = code
	lv.state.Error = ""
	lv.state.Notice = ""
	lv.state.Created = nil

	if verr := validateCreateLink(target, code); verr != nil {
		lv.state.Error = verr.Message
		lv.mu.Unlock()
		return nil, verr
	}

	snapshot := slices.Clone(lv.state.Links)
	snapshotGen := lv.gen
	lv.state.FormLoading = true
	lv.mu.Unlock()

	link, err := lv.api.CreateLink(ctx, entity.CreateLinkParams{
		Target: target,
		Code:   code,
	})

	lv.mu.Lock()
	defer lv.mu.Unlock()

	lv.state.FormLoading = false

	if err != nil {
		lv.opts.logger.Error("failed to create link", slog.String("op", op), slog.Any("err", err))

		if !lv.closed {
			// A list fetched while the call was in flight is newer than the snapshot.
			if lv.gen == snapshotGen {
				lv.state.Links = snapshot
			}
			lv.state.Error = createErrorMessage(err)
		}

		return nil, fmt.Errorf("%s: failed to create link: %w", op, err)
	}

	if !lv.closed {
		lv.state.Target = ""
		lv.state.Code = ""
		lv.state.Links = append([]entity.Link{*link}, lv.state.Links...)
		lv.state.Created = link
		lv.state.Notice = msgCreated
	}

	return link, nil
}

func createErrorMessage(err error) string {
	if errors.Is(err, entity.ErrCodeExists) {
		return msgCodeExists
	}

	var httpErr *entity.HTTPError
	if errors.As(err, &httpErr) && httpErr.Message() != "" {
		return httpErr.Message()
	}

	return msgCreateFailed
}

// Delete removes the link with the given code. Confirmation is the caller's
// responsibility. On failure the list is unchanged.
func (lv *ListView) Delete(ctx context.Context, code string) error {
	const op = "usecase.ListView.Delete"

	lv.mu.Lock()
	lv.state.Error = ""
	lv.state.Notice = ""
	lv.mu.Unlock()

	err := lv.api.DeleteLink(ctx, code)

	lv.mu.Lock()
	defer lv.mu.Unlock()

	if err != nil {
		lv.opts.logger.Error("failed to delete link", slog.String("op", op), slog.String("code", code), slog.Any("err", err))

		if !lv.closed {
			lv.state.Error = msgDeleteFailed
		}

		return fmt.Errorf("%s: failed to delete link: %w", op, err)
	}

	if !lv.closed {
		lv.state.Links = slices.DeleteFunc(slices.Clone(lv.state.Links), func(l entity.Link) bool {
			return l.Code == code
		})
	}

	return nil
}

// Click records a click-through and returns the target to open. The target
// is returned only once the increment has succeeded; on failure nothing is
// opened. After a successful click the list is re-fetched.
func (lv *ListView) Click(ctx context.Context, code string) (string, error) {
	const op = "usecase.ListView.Click"

	clickCtx, cancel := context.WithTimeout(ctx, lv.opts.clickTimeout)
	defer cancel()

	link, err := lv.api.ClickLink(clickCtx, code)
	if err != nil {
		lv.opts.logger.Error("failed to record click", slog.String("op", op), slog.String("code", code), slog.Any("err", err))
		return "", fmt.Errorf("%s: failed to record click: %w", op, err)
	}

	lv.mu.Lock()
	if !lv.closed {
		links := slices.Clone(lv.state.Links)
		for i := range links {
			if links[i].Code == link.Code {
				links[i] = *link
			}
		}
		lv.state.Links = links
	}
	lv.mu.Unlock()

	if err := lv.refresh(ctx); err != nil && !errors.Is(err, ErrStaleResponse) && !errors.Is(err, ErrViewClosed) {
		lv.opts.logger.Warn("failed to refresh links after click", slog.String("op", op), slog.Any("err", err))
	}

	return link.Target, nil
}

// ShortURL returns the public short link for code.
func (lv *ListView) ShortURL(code string) string {
	return strings.TrimRight(lv.opts.shortURLBase, "/") + "/" + code
}

// State returns a snapshot of the view.
func (lv *ListView) State() ListState {
	lv.mu.Lock()
	defer lv.mu.Unlock()

	state := lv.state
	state.Links = slices.Clone(lv.state.Links)

	return state
}

// Close unmounts the view. Responses arriving afterwards are discarded.
func (lv *ListView) Close() {
	lv.mu.Lock()
	defer lv.mu.Unlock()

	lv.closed = true
}
