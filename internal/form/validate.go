// Package form defines the typed, validated inputs of the create and edit
// pages. Echo binds request bodies into these structs and the Validator
// checks them before anything reaches the service.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// startTimeLayouts are the accepted start_time inputs, tried in order.
var startTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
}

// ParseStartTime parses a show start time. Inputs without a zone are UTC.
func ParseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range startTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid start time %q", s)
}

// Validator adapts validator/v10 to echo.Validator.
type Validator struct {
	v *validator.Validate
}

// NewValidator returns a Validator with the form rules registered. Field
// names in errors are the form field names.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("state", func(fl validator.FieldLevel) bool {
		return stateSet[fl.Field().String()]
	})
	_ = v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		return genreSet[fl.Field().String()]
	})
	_ = v.RegisterValidation("starttime", func(fl validator.FieldLevel) bool {
		_, err := ParseStartTime(fl.Field().String())
		return err == nil
	})
	return &Validator{v: v}
}

// Validate implements echo.Validator.
func (cv *Validator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

// Messages turns a validation error into one readable line per field.
func Messages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s needs at least %s entry", fe.Field(), fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "state":
		return fmt.Sprintf("%q is not a valid state", fe.Value())
	case "genre":
		return fmt.Sprintf("%q is not a valid genre", fe.Value())
	case "starttime":
		return "start_time must look like 2006-01-02 15:04:05"
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
