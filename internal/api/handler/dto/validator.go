package dto

import (
	"errors"
	"reflect"
	"strings"

	"credit-engine/internal/pkg/apperrors"
	"credit-engine/internal/pkg/cpf"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their wire names, not Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return cpf.IsValid(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return v
}

// checkStruct collects every failing field so the caller sees all problems
// in one response.
func checkStruct(s any) *apperrors.ValidationErrors {
	verrs := &apperrors.ValidationErrors{}
	if err := validate.Struct(s); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				verrs.Append(fe.Field(), msgForTag(fe))
			}
		} else {
			verrs.Append("", err.Error())
		}
	}
	return verrs
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "cpf":
		return "must be a valid CPF"
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "is invalid"
	}
}
