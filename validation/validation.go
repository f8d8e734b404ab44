// Package validation wraps go-playground/validator behind a single shared
// instance. DTOs declare their schema with `validate` struct tags and
// handlers call Struct before touching the service layer; every violation
// becomes a 422 ValidationError carrying a readable field summary.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/user/blogger-go/apperror"
)

// A single validator instance caches struct metadata; it is safe for
// concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct validates a request DTO against its `validate` tags. It returns nil
// on success and a ValidationError (422) describing every violated field
// otherwise.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		// InvalidValidationError: the argument was not a struct. Programmer error.
		return apperror.NewInternalError("validation failed", err)
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, describe(fe))
	}
	return apperror.NewValidationError(strings.Join(messages, "; "), err)
}

// describe renders one field violation in plain language.
func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
