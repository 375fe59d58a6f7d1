// Package validation turns go-playground/validator failures into
// per-field messages keyed by JSON field name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gdugdh24/skillswap-backend/internal/domain"
	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns a shared validator that reports JSON field names.
func Validator() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		UseJSONNames(instance)
	})
	return instance
}

// UseJSONNames makes v report fields by their json tag.
func UseJSONNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

// Message renders a single field failure.
func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("ensure this field has at least %s characters", fe.Param())
		}
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
		}
		return fmt.Sprintf("ensure this value is less than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("ensure this value is greater than %s", fe.Param())
	case "alphanumunicode", "username":
		return "enter a valid username"
	default:
		return fmt.Sprintf("failed on %s validation", fe.Tag())
	}
}

// FromError converts validator.ValidationErrors into a domain validation
// error. ok is false for any other error.
func FromError(err error) (*domain.ValidationError, bool) {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil, false
	}

	verr := &domain.ValidationError{}
	for _, fe := range errs {
		verr.Add(fe.Field(), Message(fe))
	}
	return verr, true
}

// Var validates a single value and reports failures under field.
func Var(field string, value interface{}, tag string) *domain.ValidationError {
	err := Validator().Var(value, tag)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return domain.NewValidationError(field, Message(errs[0]))
	}
	return domain.NewValidationError(field, err.Error())
}
