// Package httpapi implements the client of the remote links API.
//
// Every call is a single request/response exchange. Non-2xx answers are
// normalized into *entity.HTTPError and transport failures into
// *entity.NetworkError, so callers can branch with errors.Is and errors.As.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/render"
	"github.com/vadimbarashkov/tinylink-dashboard/internal/entity"
)

const (
	defaultTimeout  = 10 * time.Second
	maxErrorBodyLen = 1 << 20
)

type linkResponse struct {
	Code        string     `json:"code"`
	Target      string     `json:"target"`
	Clicks      int64      `json:"clicks"`
	LastClicked *time.Time `json:"last_clicked"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (l *linkResponse) toEntity() *entity.Link {
	return &entity.Link{
		Code:        l.Code,
		Target:      l.Target,
		Clicks:      l.Clicks,
		LastClicked: l.LastClicked,
		CreatedAt:   l.CreatedAt,
	}
}

type createLinkRequest struct {
	Target string `json:"target"`
	Code   string `json:"code,omitempty"`
}

type previewResponse struct {
	Code   string `json:"code"`
	Target string `json:"target"`
	Host   string `json:"host"`
}

type healthResponse struct {
	Status string  `json:"status"`
	Uptime float64 `json:"uptime"`
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the timeout applied to every request. A client passed
// with WithHTTPClient is copied, never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// WithLogger sets the logger used to report degraded health checks.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// Client talks to the links API rooted at baseURL (for example
// https://host/api/links).
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a Client for the links API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the root of the links API.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListLinks returns all links in the order defined by the server.
func (c *Client) ListLinks(ctx context.Context) ([]entity.Link, error) {
	const op = "adapter.repository.httpapi.Client.ListLinks"

	var resp []linkResponse

	if err := c.do(ctx, http.MethodGet, "/all", nil, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	links := make([]entity.Link, 0, len(resp))
	for i := range resp {
		links = append(links, *resp[i].toEntity())
	}

	return links, nil
}

// CreateLink creates a link. An empty params.Code lets the server assign one.
func (c *Client) CreateLink(ctx context.Context, params entity.CreateLinkParams) (*entity.Link, error) {
	const op = "adapter.repository.httpapi.Client.CreateLink"

	req := createLinkRequest{
		Target: params.Target,
		Code:   params.Code,
	}

	var resp linkResponse

	if err := c.do(ctx, http.MethodPost, "/", req, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return resp.toEntity(), nil
}

// DeleteLink removes the link with the given code.
func (c *Client) DeleteLink(ctx context.Context, code string) error {
	const op = "adapter.repository.httpapi.Client.DeleteLink"

	if err := c.do(ctx, http.MethodDelete, "/"+url.PathEscape(code), nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// GetLink returns the link with the given code. A missing link yields an
// error matching entity.ErrLinkNotFound.
func (c *Client) GetLink(ctx context.Context, code string) (*entity.Link, error) {
	const op = "adapter.repository.httpapi.Client.GetLink"

	var resp linkResponse

	if err := c.do(ctx, http.MethodGet, "/"+url.PathEscape(code), nil, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return resp.toEntity(), nil
}

// PreviewLink returns the preview payload of the link with the given code.
func (c *Client) PreviewLink(ctx context.Context, code string) (*entity.Preview, error) {
	const op = "adapter.repository.httpapi.Client.PreviewLink"

	var resp previewResponse

	if err := c.do(ctx, http.MethodGet, "/"+url.PathEscape(code)+"/preview", nil, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &entity.Preview{
		Code:   resp.Code,
		Target: resp.Target,
		Host:   resp.Host,
	}, nil
}

// ClickLink records a click-through and returns the updated link.
//
// The call increments a counter on the server, so it is never retried.
func (c *Client) ClickLink(ctx context.Context, code string) (*entity.Link, error) {
	const op = "adapter.repository.httpapi.Client.ClickLink"

	var resp linkResponse

	if err := c.do(ctx, http.MethodPost, "/"+url.PathEscape(code)+"/click", nil, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return resp.toEntity(), nil
}

// GetHealth probes the API. It never fails: any error is logged and reported
// as entity.HealthDown.
func (c *Client) GetHealth(ctx context.Context) entity.Health {
	const op = "adapter.repository.httpapi.Client.GetHealth"

	var resp healthResponse

	if err := c.do(ctx, http.MethodGet, "/healthz", nil, &resp); err != nil {
		c.logger.Warn("health check failed", slog.String("op", op), slog.Any("err", err))
		return entity.HealthDown
	}

	return entity.Health{
		Status: resp.Status,
		Uptime: resp.Uptime,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &entity.NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newHTTPError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := render.DecodeJSON(resp.Body, out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}

	return nil
}

func newHTTPError(resp *http.Response) *entity.HTTPError {
	httpErr := &entity.HTTPError{
		StatusCode: resp.StatusCode,
		Body:       map[string]any{},
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
	if err != nil || len(data) == 0 {
		return httpErr
	}

	var body map[string]any
	if err := json.Unmarshal(data, &body); err == nil && body != nil {
		httpErr.Body = body
	}

	return httpErr
}
