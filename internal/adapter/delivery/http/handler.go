package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/vadimbarashkov/tinylink-dashboard/internal/entity"
	"github.com/vadimbarashkov/tinylink-dashboard/internal/usecase"
)

type dashboardHandler struct {
	api      usecase.LinkAPI
	viewOpts []usecase.Option
	location *time.Location
}

func newDashboardHandler(api usecase.LinkAPI, viewOpts []usecase.Option, location *time.Location) *dashboardHandler {
	return &dashboardHandler{
		api:      api,
		viewOpts: viewOpts,
		location: location,
	}
}

func (h *dashboardHandler) health(w http.ResponseWriter, r *http.Request) {
	upstream := h.api.GetHealth(r.Context())

	render.Status(r, http.StatusOK)
	render.JSON(w, r, healthResponse{
		Status: entity.HealthStatusOK,
		Upstream: upstreamHealth{
			Status: upstream.Status,
			Uptime: upstream.Uptime,
		},
	})
}

func (h *dashboardHandler) listLinks(w http.ResponseWriter, r *http.Request) {
	lv := usecase.NewListView(h.api, h.viewOpts...)
	defer lv.Close()

	h.load(r, lv)
	h.renderList(w, r, http.StatusOK, newListPage(lv, h.location))
}

func (h *dashboardHandler) createLink(w http.ResponseWriter, r *http.Request) {
	target := r.PostFormValue("target")
	code := r.PostFormValue("code")

	lv := usecase.NewListView(h.api, h.viewOpts...)
	defer lv.Close()

	if err := usecase.ValidateCreateLink(target, code); err != nil {
		// Create only records the rejected input here; the list is loaded
		// afterwards to render the page.
		_, _ = lv.Create(r.Context(), target, code)
		h.load(r, lv)
		h.renderList(w, r, http.StatusBadRequest, newListPage(lv, h.location))
		return
	}

	h.load(r, lv)

	if _, err := lv.Create(r.Context(), target, code); err != nil {
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))
		h.renderList(w, r, statusFor(err), newListPage(lv, h.location))
		return
	}

	h.renderList(w, r, http.StatusCreated, newListPage(lv, h.location))
}

func (h *dashboardHandler) deleteLink(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	lv := usecase.NewListView(h.api, h.viewOpts...)
	defer lv.Close()

	if err := lv.Delete(r.Context(), code); err != nil {
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))
		h.load(r, lv)
		h.renderList(w, r, statusFor(err), newListPage(lv, h.location))
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// clickLink records the click and renders the re-fetched list, which then
// opens the target. Nothing is opened when the click fails.
func (h *dashboardHandler) clickLink(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	lv := usecase.NewListView(h.api, h.viewOpts...)
	defer lv.Close()

	target, err := lv.Click(r.Context(), code)
	if err != nil {
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	lv.CheckHealth(r.Context())

	page := newListPage(lv, h.location)
	page.OpenTarget = target

	h.renderList(w, r, http.StatusOK, page)
}

func (h *dashboardHandler) linkDetail(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	dv := usecase.NewDetailView(h.api, h.viewOpts...)
	defer dv.Close()

	if err := dv.Load(r.Context(), code); err != nil {
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))
	}

	h.renderDetail(w, r, detailStatus(dv.State()), newDetailPage(dv.State(), h.location))
}

func (h *dashboardHandler) clickDetail(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	dv := usecase.NewDetailView(h.api, h.viewOpts...)
	defer dv.Close()

	if err := dv.Load(r.Context(), code); err != nil {
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))
		h.renderDetail(w, r, detailStatus(dv.State()), newDetailPage(dv.State(), h.location))
		return
	}

	target, err := dv.Click(r.Context())
	if err != nil {
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))
		h.renderDetail(w, r, http.StatusBadGateway, newDetailPage(dv.State(), h.location))
		return
	}

	page := newDetailPage(dv.State(), h.location)
	page.OpenTarget = target

	h.renderDetail(w, r, http.StatusOK, page)
}

// load fills lv for rendering. Failures are already reflected in its state.
func (h *dashboardHandler) load(r *http.Request, lv *usecase.ListView) {
	if err := lv.Load(r.Context()); err != nil {
		httplog.LogEntrySetField(r.Context(), "load_err", slog.AnyValue(err))
	}
}

func (h *dashboardHandler) renderList(w http.ResponseWriter, r *http.Request, status int, page listPage) {
	renderPage(w, r, status, listTemplate, page)
}

func (h *dashboardHandler) renderDetail(w http.ResponseWriter, r *http.Request, status int, page detailPage) {
	renderPage(w, r, status, detailTemplate, page)
}

// statusFor maps a failed action to the status of the page rendered for it.
func statusFor(err error) int {
	var verr *usecase.ValidationError

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrLinkNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrCodeExists):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func detailStatus(state usecase.DetailState) int {
	switch state.Status {
	case usecase.DetailNotFound:
		return http.StatusNotFound
	case usecase.DetailFailed:
		return http.StatusBadGateway
	default:
		return http.StatusOK
	}
}
