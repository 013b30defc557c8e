package validator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var global *validator.Validate

const (
	ErrFieldRequired     = "is required"
	ErrFieldBlank        = "must not be blank"
	ErrFieldExceedsMax   = "exceeds the maximum"
	ErrFieldBelowMin     = "is below the minimum"
	ErrFieldInvalidEmail = "must be a valid email address"
	ErrUnknownValidation = "is invalid"
)

func init() {
	SetValidator(New())
}

func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// 使用 json 字段名报告错误
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validateNotBlank)
	return v
}

func SetValidator(v *validator.Validate) {
	global = v
}

func Validator() *validator.Validate {
	return global
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Validate checks structure against its `validate` tags and returns one
// message per failing field, joined.
func Validate(ctx context.Context, structure any) error {
	return parseValidationErrors(Validator().StructCtx(ctx, structure))
}

func parseValidationErrors(err error) error {
	if err == nil {
		return nil
	}
	var vErrors validator.ValidationErrors
	if !errors.As(err, &vErrors) {
		return err
	}
	msgs := make([]string, 0, len(vErrors))
	for _, ve := range vErrors {
		msgs = append(msgs, fmt.Sprintf("%s %s", ve.Field(), message(ve)))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func message(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return ErrFieldRequired
	case "notblank":
		return ErrFieldBlank
	case "email":
		return ErrFieldInvalidEmail
	case "max", "lt", "lte":
		return fmt.Sprintf("%s (%s)", ErrFieldExceedsMax, ve.Param())
	case "min", "gt", "gte":
		return fmt.Sprintf("%s (%s)", ErrFieldBelowMin, ve.Param())
	default:
		return ErrUnknownValidation
	}
}
