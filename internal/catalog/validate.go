package catalog

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var messages = map[string]string{
	"max":            "Ensure this field has no more than {param} characters.",
	"decimal_gte":    "Ensure this value is greater than or equal to {param}.",
	"max_digits":     "Ensure that there are no more than {param} digits in total.",
	"whole_digits":   "Ensure that there are no more than {param} digits before the decimal point.",
	"decimal_places": "Ensure that there are no more than {param} decimal places.",
}

var numericMessages = map[string]string{
	"min": "Ensure this value is greater than or equal to {param}.",
	"max": "Ensure this value is less than or equal to {param}.",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	mustRegister(v, "decimal_gte", decimalGTE)
	mustRegister(v, "max_digits", maxDigits)
	mustRegister(v, "whole_digits", maxWholeDigits)
	mustRegister(v, "decimal_places", maxDecimalPlaces)

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func fieldDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(fl.Field().String())
	return d, err == nil
}

func paramDecimal(fl validator.FieldLevel) decimal.Decimal {
	return decimal.RequireFromString(fl.Param())
}

func paramInt(fl validator.FieldLevel) int {
	return int(paramDecimal(fl).IntPart())
}

func decimalGTE(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	return ok && d.GreaterThanOrEqual(paramDecimal(fl))
}

func maxDigits(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	if !ok {
		return false
	}
	digits, _ := digitCounts(d)
	return digits <= paramInt(fl)
}

func maxDecimalPlaces(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	if !ok {
		return false
	}
	_, decimals := digitCounts(d)
	return decimals <= paramInt(fl)
}

func maxWholeDigits(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	if !ok {
		return false
	}
	digits, decimals := digitCounts(d)
	return digits-decimals <= paramInt(fl)
}

// digitCounts returns the total significant digits and the digits after the
// decimal point, keeping trailing zeros as written.
func digitCounts(d decimal.Decimal) (int, int) {
	coefficient := d.Coefficient()
	length := len(coefficient.Abs(coefficient).String())
	exp := int(d.Exponent())

	switch {
	case exp >= 0:
		return length + exp, 0
	case -exp > length:
		return -exp, -exp
	default:
		return length, -exp
	}
}

func (s *Service) validate(input ProductInput) error {
	err := s.validator.Struct(input)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	verr := &ValidationError{}
	for _, fe := range errs {
		verr.add(fe.Field(), messageFor(fe))
	}
	return verr
}

func messageFor(fe validator.FieldError) string {
	template, ok := messages[fe.Tag()]
	if fe.Kind() != reflect.String {
		if m, numeric := numericMessages[fe.Tag()]; numeric {
			template, ok = m, true
		}
	}
	if !ok {
		return "Invalid value."
	}
	return strings.ReplaceAll(template, "{param}", fe.Param())
}
