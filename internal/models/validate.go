package models

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	// Compare decimal amounts numerically.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("duedate", func(fl validator.FieldLevel) bool {
		return IsCanonicalDueDate(fl.Field().String())
	})

	return v
}

// Validate checks the fields an order must carry before it is persisted.
// The first failing field is reported as a *ValidationError.
func (o *Order) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Field: "order", Reason: err.Error()}
	}

	fe := fieldErrs[0]
	return &ValidationError{Field: fe.Field(), Reason: reasonFor(fe)}
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "duedate":
		return "must be a date in YYYY-MM-DD form"
	case "gte":
		return "must not be negative"
	case "min":
		return "must be at least " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
