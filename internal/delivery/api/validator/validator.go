// Package validator adapts go-playground/validator to echo.Validator.
package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// RequestValidator validates bound request bodies.
type RequestValidator struct {
	validate *validator.Validate
}

func New() *RequestValidator {
	return &RequestValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate checks the `validate` struct tags of i.
func (v *RequestValidator) Validate(i any) error {
	return errors.WithStack(v.validate.Struct(i))
}
