package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for empty tags or nil functions.
	_ = validate.RegisterValidation("input_path", validInputPath)
}

// validInputPath accepts a local path or an s3://bucket/key URI.
func validInputPath(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	if strings.TrimSpace(path) == "" {
		return false
	}
	if rest, ok := strings.CutPrefix(path, "s3://"); ok {
		bucket, key, found := strings.Cut(rest, "/")
		return found && bucket != "" && key != ""
	}
	return !strings.Contains(path, "://")
}

// Struct validates v using its `validate` struct tags and reports the first
// failure in a readable form.
func Struct(v any) error {
	if v == nil {
		return errors.New("value to validate cannot be nil")
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		field := e.Namespace()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min", "max":
			bound := "at least"
			if e.Tag() == "max" {
				bound = "at most"
			}
			switch e.Kind() {
			case reflect.Slice, reflect.Map:
				return fmt.Errorf("%s: must have %s %s entries", field, bound, param)
			default:
				return fmt.Errorf("%s: must be %s %s", field, bound, param)
			}
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s], got %q", field, param, e.Value())
		case "input_path":
			return fmt.Errorf("%s: %q is not a local path or s3://bucket/key", field, e.Value())
		case "unique":
			return fmt.Errorf("%s: entries must be unique", field)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
