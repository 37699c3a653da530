// Package validation turns go-playground/validator failures into readable sentinel errors.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var validationMessages = map[string]string{
	"required":  "is required",
	"min":       "must be at least %s characters",
	"max":       "must be at most %s characters",
	"gte":       "must be greater than or equal to %s",
	"email":     "must be a valid email address",
	"latitude":  "must be a valid latitude",
	"longitude": "must be a valid longitude",
	"timezone":  "must be an IANA timezone such as America/Chicago",
	"oneof":     "must be one of: %s",
	"datetime":  "must use the format %s",
	"uuid":      "must be a UUID",
}

// Struct runs the struct tags of payload and wraps failures in sentinel. The message lists every
// failing field by its Go name with the first letter lowered.
func Struct(payload any, sentinel error) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("%w: %v", sentinel, err)
	}
	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		message, ok := validationMessages[fe.Tag()]
		if !ok {
			message = "is invalid"
		}
		if strings.Contains(message, "%s") {
			param := fe.Param()
			if fe.Tag() == "oneof" {
				param = strings.Join(strings.Fields(param), ", ")
			}
			message = fmt.Sprintf(message, param)
		}
		messages = append(messages, lowerFirst(fe.Field())+" "+message)
	}
	return fmt.Errorf("%w: %s", sentinel, strings.Join(messages, ", "))
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
