package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator adapts validator/v10 to echo's Validator interface. Field names in
// messages follow the JSON tags.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator builds a validator that reports JSON field names.
func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

// Validate implements echo.Validator.
func (v *RequestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// bindAndValidate decodes the request body into dst and runs its validate tags. The
// returned message is safe to send to clients.
func bindAndValidate(c echo.Context, dst any) (string, bool) {
	if err := c.Bind(dst); err != nil {
		return "invalid payload", false
	}
	if err := c.Validate(dst); err != nil {
		return validationMessage(err), false
	}
	return "", true
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "invalid payload"
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fieldMessage(fe))
	}
	return strings.Join(parts, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "uuid":
		return fmt.Sprintf("%s must be a valid id", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s long", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s long", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
