// Package validate wraps a shared go-playground validator and reports the
// first failing field as an apperr.ValidationError named after its JSON key.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/smokyabdulrahman/salat/internal/apperr"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(f.Tag.Get("query"), ",", 2)[0]
		}
		return name
	})
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperr.Invalid(fe.Field(), fe.Value(), reason(fe))
	}
	return fmt.Errorf("validate: %w", err)
}

// Validator exposes the shared instance for custom registrations.
func Validator() *validator.Validate {
	return validate
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte", "min":
		return "must be >= " + fe.Param()
	case "lte", "max":
		return "must be <= " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "len":
		return "must have length " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
