package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mstgnz/interkassa/infra/config"
	"github.com/shopspring/decimal"
)

// New returns a validator with the custom tags of this service registered
func New() *validator.Validate {
	v := validator.New()
	register(v)
	return v
}

// CustomValidate registers the custom tags on the shared application validator
func CustomValidate() {
	register(config.App().Validator)
}

func register(v *validator.Validate) {
	_ = v.RegisterValidation("amount", validateAmount)
}

// validateAmount accepts non-negative decimal strings such as "12.52"
func validateAmount(fl validator.FieldLevel) bool {
	amount, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return !amount.IsNegative()
}

// Struct validates s and flattens validator errors into a single readable error
func Struct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
	}
	return errors.New(strings.Join(messages, "; "))
}
