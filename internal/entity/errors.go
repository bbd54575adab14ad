package entity

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrCodeExists is returned when attempting to create a link with a code that is already taken.
	ErrCodeExists = errors.New("code already exists")
	// ErrLinkNotFound is returned when a link with the specified code cannot be found.
	ErrLinkNotFound = errors.New("link not found")
)

// HTTPError is returned when the links API answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Body       map[string]any
}

func (e *HTTPError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("links api: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), msg)
	}
	return fmt.Sprintf("links api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Message returns the server-provided error message, if any.
func (e *HTTPError) Message() string {
	msg, _ := e.Body["error"].(string)
	return msg
}

// Unwrap maps well-known statuses onto the sentinel errors.
func (e *HTTPError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrLinkNotFound
	case http.StatusConflict:
		return ErrCodeExists
	default:
		return nil
	}
}

// NetworkError is returned when a request to the links API could not complete.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("links api: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
