// Package serializers maps entities to wire payloads and validates input.
package serializers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"movie-catalog/internal/apperror"

	"github.com/go-playground/validator/v10"
)

const (
	YearFormat       = "2006"
	ReviewDateFormat = "02-01-2006 15:04"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// Validate checks the struct tags of input and reports failures as a
// Validation error keyed by JSON field name.
func Validate(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Validation("Invalid request body", nil)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return apperror.Validation("Validation failed", fields)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "url":
		return "Enter a valid URL."
	default:
		return fmt.Sprintf("Failed on the '%s' rule.", fe.Tag())
	}
}

func formatYear(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(YearFormat)
}

func formatReviewDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(ReviewDateFormat)
}
