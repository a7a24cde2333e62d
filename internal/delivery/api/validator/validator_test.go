package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
}

func TestValidate(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&sample{Username: "alice", Email: "a@x.io"}))

	err := v.Validate(&sample{Username: "alice", Email: "not-an-address"})
	var fieldErrs validator.ValidationErrors
	assert.True(t, errors.As(err, &fieldErrs))
	assert.Equal(t, "Email", fieldErrs[0].Field())

	assert.Error(t, v.Validate(&sample{Email: "a@x.io"}))
}
