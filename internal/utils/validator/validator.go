package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// Violation is a single broken constraint, keyed by the JSON name of the field.
type Violation struct {
	Field   string
	Type    string
	Message string
}

func GetValidator() *validator.Validate {
	once.Do(initValidator)
	return validate
}

func initValidator() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// ParseErrors flattens validator errors into violations, one per failed field.
func ParseErrors(err error) []Violation {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []Violation{{Type: "value_error", Message: err.Error()}}
	}

	violations := make([]Violation, 0, len(validationErrors))
	for _, e := range validationErrors {
		violations = append(violations, Violation{
			Field:   e.Field(),
			Type:    errorType(e),
			Message: prettyError(e),
		})
	}

	return violations
}

func isString(e validator.FieldError) bool {
	return e.Kind() == reflect.String
}

func errorType(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "missing"
	case "min":
		if isString(e) {
			return "string_too_short"
		}
		return "greater_than_equal"
	case "max":
		if isString(e) {
			return "string_too_long"
		}
		return "less_than_equal"
	default:
		return e.Tag()
	}
}

func prettyError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " field is required"
	case "min":
		if isString(e) {
			return fmt.Sprintf("%s length must be greater than or equal to %s", e.Field(), e.Param())
		}
		return fmt.Sprintf("%s must be greater than or equal to %s", e.Field(), e.Param())
	case "max":
		if isString(e) {
			return fmt.Sprintf("%s length must be less than or equal to %s", e.Field(), e.Param())
		}
		return fmt.Sprintf("%s must be less than or equal to %s", e.Field(), e.Param())
	default:
		return e.Error()
	}
}
