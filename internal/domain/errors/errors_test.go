package errors

import (
	"net/http"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestBaseError_WrapMessageKeepsIdentity(t *testing.T) {
	err := ErrUsernameTaken.WrapMessage("registration failed")

	assert.True(t, pkgerrors.Is(err, ErrUsernameTaken))

	var appErr AppError
	assert.True(t, pkgerrors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
	assert.Equal(t, "USERNAME_TAKEN", appErr.ErrorCode())
	assert.Equal(t, "Username already exists", appErr.Message())
}

func TestPredefinedErrors_StatusCodes(t *testing.T) {
	tests := []struct {
		err     *BaseError
		code    int
		message string
	}{
		{ErrUsernameTaken, http.StatusBadRequest, "Username already exists"},
		{ErrEmailTaken, http.StatusBadRequest, "Email already exists"},
		{ErrAccountNotFound, http.StatusNotFound, "User not found"},
		{ErrInvalidPassword, http.StatusUnauthorized, "Invalid password"},
		{ErrAccessDenied, http.StatusForbidden, "Access denied"},
		{ErrInvalidToken, http.StatusUnauthorized, "Invalid token"},
		{ErrValidationFailed, http.StatusBadRequest, "Invalid request body"},
		{ErrInternalError, http.StatusInternalServerError, "Server error"},
	}

	for _, tt := range tests {
		t.Run(tt.err.ErrorCode(), func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.HTTPCode())
			assert.Equal(t, tt.message, tt.err.Message())
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}
