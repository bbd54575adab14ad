package stubapi

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/tinylink-dashboard/internal/entity"
)

// createLinkRequest represents the payload of a create call.
type createLinkRequest struct {
	Target string `json:"target" validate:"required,http_url"`
	Code   string `json:"code" validate:"omitempty,alphanum,min=6,max=8"`
}

// linkResponse represents a link on the wire.
type linkResponse struct {
	Code        string     `json:"code"`
	Target      string     `json:"target"`
	Clicks      int64      `json:"clicks"`
	LastClicked *time.Time `json:"last_clicked"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toLinkResponse(link *entity.Link) linkResponse {
	return linkResponse{
		Code:        link.Code,
		Target:      link.Target,
		Clicks:      link.Clicks,
		LastClicked: link.LastClicked,
		CreatedAt:   link.CreatedAt,
	}
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

// validationError represents an individual validation error.
type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorResponse carries the message under "error", which is where clients
// look for it.
type errorResponse struct {
	Error   string            `json:"error"`
	Details []validationError `json:"details,omitempty"`
}

// Predefined error responses for common scenarios.
var (
	emptyRequestBodyResponse   = errorResponse{Error: "empty request body"}
	invalidRequestBodyResponse = errorResponse{Error: "invalid request body"}
	linkNotFoundResponse       = errorResponse{Error: "Link not found"}
	codeExistsResponse         = errorResponse{Error: "Code already exists"}
	serverErrorResponse        = errorResponse{Error: "server error occurred"}
)

// messageForTag returns a user-friendly message based on the validation tag.
func messageForTag(tag string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "http_url":
		return "invalid url"
	case "alphanum", "min", "max":
		return "must be 6-8 alphanumeric characters"
	default:
		return "invalid value"
	}
}

func validationErrorResponse(err error) errorResponse {
	var details []validationError

	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		for _, e := range errs {
			details = append(details, validationError{
				Field:   e.Field(),
				Message: messageForTag(e.Tag()),
			})
		}
	}

	resp := errorResponse{
		Error:   "validation error",
		Details: details,
	}
	if len(details) > 0 {
		resp.Error = details[0].Field + ": " + details[0].Message
	}

	return resp
}
