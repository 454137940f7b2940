package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: validator.New()}
}

func (v *Validator) Validate(i interface{}) error {
	return v.v.Struct(i)
}

// Messages flattens a validator error into one human message per
// failing field, the shape the validation-error responses carry.
func Messages(err error) []string {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(ve))
	for _, fe := range ve {
		out = append(out, message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must have length %s", fe.Field(), fe.Param())
	case "numeric":
		return fmt.Sprintf("%s must contain only digits", fe.Field())
	case "datetime":
		return fmt.Sprintf("%s must be a date in the form %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
