package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/tinylink-dashboard/internal/entity"
)

const shortCodeTag = "shortcode"

// ValidationError is returned when form input is rejected before any request
// is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in field '%s': %s", e.Field, e.Message)
}

type createLinkForm struct {
	Target string `form:"target" validate:"required,url"`
	Code   string `form:"code" validate:"omitempty,shortcode"`
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// The tag is a constant and the function is non-nil, so this cannot fail.
	_ = v.RegisterValidation(shortCodeTag, func(fl validator.FieldLevel) bool {
		return entity.ValidCode(fl.Field().String())
	})

	return v
}

// messageFor returns the message shown for a failed field rule.
func messageFor(field, tag string) string {
	switch {
	case field == "target" && tag == "required":
		return "Target URL required"
	case field == "target":
		return "Invalid URL"
	case field == "code":
		return "Code must be 6-8 alphanumeric characters"
	default:
		return "Invalid value"
	}
}

// ValidateCreateLink checks create form input the same way ListView.Create
// does, without calling the API. The returned error is a *ValidationError.
func ValidateCreateLink(target, code string) error {
	if verr := validateCreateLink(strings.TrimSpace(target), strings.TrimSpace(code)); verr != nil {
		return verr
	}
	return nil
}

func validateCreateLink(target, code string) *ValidationError {
	err := validate.Struct(createLinkForm{Target: target, Code: code})
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return &ValidationError{
			Field:   errs[0].Field(),
			Message: messageFor(errs[0].Field(), errs[0].Tag()),
		}
	}

	return &ValidationError{Message: "Invalid value"}
}
