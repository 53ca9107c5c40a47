package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// FieldError describes one invalid request field
type FieldError struct {
	Message string `json:"message"`
	Field   string `json:"field"`
}

// ValidationErrors is returned by Validate when one or more fields are invalid
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	messages := make([]string, len(e))
	for i, fe := range e {
		messages[i] = fe.Message
	}
	return strings.Join(messages, "; ")
}

var loginPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]*$`)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Use JSON tag names instead of struct field names for error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(fld.Name)
		}
		return name
	})

	// Rejects whitespace-only strings
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("login", func(fl validator.FieldLevel) bool {
		return loginPattern.MatchString(fl.Field().String())
	})

	return &Validator{
		validate: v,
	}
}

func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return formatValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func formatValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	result := make(ValidationErrors, 0, len(errs))
	seen := make(map[string]bool, len(errs))

	for _, err := range errs {
		field := err.Field()
		// one message per field
		if seen[field] {
			continue
		}
		seen[field] = true

		var message string
		switch err.Tag() {
		case "required", "notblank":
			message = fmt.Sprintf("%s is required", field)
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", field)
		case "url", "startswith":
			message = fmt.Sprintf("%s must be a valid https URL", field)
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", field, err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", field, err.Param())
		case "uuid":
			message = fmt.Sprintf("%s must be a valid UUID", field)
		case "login":
			message = fmt.Sprintf("%s contains invalid characters", field)
		default:
			message = fmt.Sprintf("%s failed validation for %s", field, err.Tag())
		}
		result = append(result, FieldError{Message: message, Field: field})
	}

	return result
}
