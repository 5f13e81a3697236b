package finsec

import (
	"errors"
	"reflect"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/go-playground/validator/v10"
)

// validate checks the `validate` tags of the parameter structs. Field names reported in errors
// are taken from the `json` tags so they match the serialized names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("iso4217", validateISO4217)
	_ = v.RegisterValidation("exchange", validateExchange)
	return v
}

// validateISO4217 accepts the currency codes go-money knows about.
func validateISO4217(fl validator.FieldLevel) bool {
	return money.GetCurrency(normalizeTicker(fl.Field().String())) != nil
}

func validateExchange(fl validator.FieldLevel) bool {
	return Exchange(fl.Field().String()).Valid()
}

// checkParams runs the tag validation on p and converts the first failure into a
// ValidationError.
func checkParams(p any) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Msg: err.Error(), Err: err}
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return missing(fe.Field())
	case "iso4217":
		return invalid(fe.Field(), nil, "%q is not an ISO 4217 currency code", fe.Value())
	case "exchange":
		return invalid(fe.Field(), nil, "unknown exchange %q", fe.Value())
	case "gte", "gt":
		return invalid(fe.Field(), nil, "must be %s %s", fe.Tag(), fe.Param())
	default:
		return invalid(fe.Field(), nil, "failed the %q check", fe.Tag())
	}
}
