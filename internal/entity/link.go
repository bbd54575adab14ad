// Package entity defines the entities and errors shared by the dashboard.
// It includes the Link struct, which mirrors a shortened link owned by the
// links API, along with the health and preview payloads and the error
// taxonomy used to surface API failures.
package entity

import (
	"regexp"
	"time"
)

// CodePattern matches a client-supplied short code.
var CodePattern = regexp.MustCompile(`^[A-Za-z0-9]{6,8}$`)

// ValidCode reports whether code may be requested by a client.
func ValidCode(code string) bool {
	return CodePattern.MatchString(code)
}

// Link represents a shortened link as returned by the links API.
type Link struct {
	Code        string     // Code is the short identifier of the link.
	Target      string     // Target is the URL the code redirects to.
	Clicks      int64      // Clicks is the number of recorded click-throughs.
	LastClicked *time.Time // LastClicked is nil until the first click-through.
	CreatedAt   time.Time  // CreatedAt is the timestamp when the link was created.
}

// CreateLinkParams holds the input of a create call. An empty Code lets the
// server assign one.
type CreateLinkParams struct {
	Target string
	Code   string
}

// Preview is the payload of the preview endpoint.
type Preview struct {
	Code   string
	Target string
	Host   string
}

const (
	HealthStatusOK   = "ok"
	HealthStatusDown = "down"
)

// Health is the liveness report of the links API.
type Health struct {
	Status string
	Uptime float64 // Uptime is reported in seconds.
}

// HealthDown is reported whenever the health check cannot be completed.
var HealthDown = Health{Status: HealthStatusDown, Uptime: 0}

// OK reports whether the API considers itself healthy.
func (h Health) OK() bool {
	return h.Status == HealthStatusOK
}
