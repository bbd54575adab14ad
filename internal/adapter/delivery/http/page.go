package http

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/vadimbarashkov/tinylink-dashboard/internal/entity"
	"github.com/vadimbarashkov/tinylink-dashboard/internal/usecase"
)

// displayLayout renders timestamps the way en-IN locales print them.
const displayLayout = "2/1/2006, 3:04:05 pm"

//go:embed templates/*.html
var templateFS embed.FS

var (
	listTemplate   = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/list.html"))
	detailTemplate = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/detail.html"))
)

type healthResponse struct {
	Status   string         `json:"status"`
	Upstream upstreamHealth `json:"upstream"`
}

type upstreamHealth struct {
	Status string  `json:"status"`
	Uptime float64 `json:"uptime"`
}

type healthBadge struct {
	Status string
	Uptime int64
	OK     bool
}

type linkRow struct {
	Code        string
	Target      string
	Clicks      int64
	LastClicked string
	CreatedAt   string
	ShortURL    string
}

type listPage struct {
	Title           string
	Health          healthBadge
	Links           []linkRow
	Target          string
	Code            string
	Error           string
	Notice          string
	CreatedShortURL string
	OpenTarget      string // OpenTarget is opened in a new tab once the page loads.
	Back            string // Back is the address the page is shown under.
}

type detailPage struct {
	Title      string
	Code       string
	Link       *linkRow
	NotFound   bool
	Failed     bool
	Reason     string
	Error      string
	OpenTarget string
	Back       string
}

func newListPage(lv *usecase.ListView, loc *time.Location) listPage {
	state := lv.State()

	page := listPage{
		Title: "Dashboard",
		Back:  "/",
		Health: healthBadge{
			Status: state.Health.Status,
			Uptime: int64(math.Floor(state.Health.Uptime)),
			OK:     state.Health.OK(),
		},
		Links:  make([]linkRow, 0, len(state.Links)),
		Target: state.Target,
		Code:   state.Code,
		Error:  state.Error,
		Notice: state.Notice,
	}

	for i := range state.Links {
		row := newLinkRow(&state.Links[i], loc)
		row.ShortURL = lv.ShortURL(row.Code)
		page.Links = append(page.Links, row)
	}

	if state.Created != nil {
		page.CreatedShortURL = lv.ShortURL(state.Created.Code)
	}

	return page
}

func newDetailPage(state usecase.DetailState, loc *time.Location) detailPage {
	page := detailPage{
		Title:    "Stats for " + state.Code,
		Code:     state.Code,
		NotFound: state.Status == usecase.DetailNotFound,
		Failed:   state.Status == usecase.DetailFailed,
		Reason:   state.Reason,
		Error:    state.Error,
		Back:     "/code/" + url.PathEscape(state.Code),
	}

	if state.Status == usecase.DetailLoaded && state.Link != nil {
		row := newLinkRow(state.Link, loc)
		page.Link = &row
	}

	return page
}

func newLinkRow(link *entity.Link, loc *time.Location) linkRow {
	return linkRow{
		Code:        link.Code,
		Target:      link.Target,
		Clicks:      link.Clicks,
		LastClicked: formatTime(link.LastClicked, loc),
		CreatedAt:   formatTime(&link.CreatedAt, loc),
	}
}

// formatTime renders t in loc, or "-" when there is nothing to show.
func formatTime(t *time.Time, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.In(loc).Format(displayLayout)
}

func renderPage(w http.ResponseWriter, r *http.Request, status int, tmpl *template.Template, data any) {
	var buf bytes.Buffer

	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	render.Status(r, status)
	render.HTML(w, r, buf.String())
}
