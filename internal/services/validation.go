package services

import (
	"errors"
	"fmt"

	"backoffice/internal/discount"
	"backoffice/internal/domain"

	"github.com/go-playground/validator/v10"
)

// validate is shared by every service; validator caches struct metadata per instance.
var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs the struct tags of v and converts failures into domain errors.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.ValidationError{Msg: err.Error(), Err: err}
	}
	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, domain.ValidationError{Field: fe.Field(), Msg: describe(fe)})
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

// discountError maps an engine rejection onto the validation error the API reports.
func discountError(err error) error {
	var rej discount.RejectionError
	if errors.As(err, &rej) {
		return domain.ValidationError{Field: rej.Code, Msg: rej.Reason, Err: err}
	}
	return err
}
