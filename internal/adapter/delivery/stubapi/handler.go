package stubapi

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/tinylink-dashboard/internal/entity"
)

type linkHandler struct {
	store    *Store
	validate *validator.Validate
}

func newLinkHandler(store *Store, validate *validator.Validate) *linkHandler {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &linkHandler{
		store:    store,
		validate: validate,
	}
}

func (h *linkHandler) health(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, healthResponse{
		Status: entity.HealthStatusOK,
		Uptime: h.store.Uptime().Seconds(),
	})
}

func (h *linkHandler) listLinks(w http.ResponseWriter, r *http.Request) {
	links := h.store.List()

	resp := make([]linkResponse, 0, len(links))
	for i := range links {
		resp = append(resp, toLinkResponse(&links[i]))
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

func (h *linkHandler) createLink(w http.ResponseWriter, r *http.Request) {
	var req createLinkRequest

	if err := render.DecodeJSON(r.Body, &req); err != nil {
		if errors.Is(err, io.EOF) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, emptyRequestBodyResponse)
			return
		}

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidRequestBodyResponse)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, validationErrorResponse(err))
		return
	}

	link, err := h.store.Create(req.Target, req.Code)
	if err != nil {
		if errors.Is(err, entity.ErrCodeExists) {
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, codeExistsResponse)
			return
		}

		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, serverErrorResponse)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toLinkResponse(link))
}

func (h *linkHandler) getLink(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	link, err := h.store.Get(code)
	if err != nil {
		h.renderLookupError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toLinkResponse(link))
}

func (h *linkHandler) previewLink(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	link, err := h.store.Get(code)
	if err != nil {
		h.renderLookupError(w, r, err)
		return
	}

	var host string
	if u, err := url.Parse(link.Target); err == nil {
		host = u.Host
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, previewResponse{
		Code:   link.Code,
		Target: link.Target,
		Host:   host,
	})
}

func (h *linkHandler) deleteLink(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if err := h.store.Delete(code); err != nil {
		h.renderLookupError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *linkHandler) clickLink(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	link, err := h.store.Click(code)
	if err != nil {
		h.renderLookupError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toLinkResponse(link))
}

func (h *linkHandler) redirect(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	link, err := h.store.Click(code)
	if err != nil {
		h.renderLookupError(w, r, err)
		return
	}

	http.Redirect(w, r, link.Target, http.StatusFound)
}

func (h *linkHandler) renderLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, entity.ErrLinkNotFound) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, linkNotFoundResponse)
		return
	}

	httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, serverErrorResponse)
}
