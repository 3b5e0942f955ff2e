package product

import (
	"fmt"
	"reflect"
	"regexp"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var expirationPattern = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Decimals reach the validator as their exact string form.
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		d, ok := f.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}
		return d.String()
	}, decimal.Decimal{})

	if err := v.RegisterValidation("positive", func(fl validator.FieldLevel) bool {
		return positiveDecimal(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("expiry", func(fl validator.FieldLevel) bool {
		return validExpiration(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

func positiveDecimal(s string) bool {
	d, err := decimal.NewFromString(s)
	return err == nil && d.IsPositive()
}

// validExpiration reports whether s is a real calendar date in DD-MM-YYYY form.
func validExpiration(s string) bool {
	if !expirationPattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(ExpirationLayout, s)
	return err == nil
}

// ValidationError describes a product field that violates its constraint.
type ValidationError struct {
	Field string
	Rule  string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid product %s %q: %s", e.Field, e.Value, ruleMessage(e.Rule))
}

func ruleMessage(rule string) string {
	switch rule {
	case "required":
		return "is required"
	case "positive":
		return "must be positive"
	case "gte":
		return "must not be negative"
	case "expiry":
		return "must be a DD-MM-YYYY date"
	case "kind":
		return "unknown product kind"
	}
	return "is invalid"
}

// Validate checks p against the construction invariants of its kind.
func Validate(p Product) error {
	if err := validate.Struct(p); err != nil {
		return validationError(err)
	}

	switch p.Kind {
	case KindStandard:
		return nil
	case KindPerishable:
		if err := validate.Var(p.ExpirationDate, "required,expiry"); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				return &ValidationError{Field: "ExpirationDate", Rule: verrs[0].Tag(), Value: p.ExpirationDate}
			}
			return errors.Wrap(err, "validate expiration date")
		}
		return nil
	default:
		return &ValidationError{Field: "Kind", Rule: "kind", Value: string(p.Kind)}
	}
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(err, "validate product")
	}
	fe := verrs[0]
	return &ValidationError{
		Field: fe.Field(),
		Rule:  fe.Tag(),
		Value: fmt.Sprint(fe.Value()),
	}
}
