package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"authsvc/internal/delivery/api/validator"
	deliverycontext "authsvc/internal/delivery/context"
	"authsvc/internal/domain/entity"
	domainerrors "authsvc/internal/domain/errors"
	"authsvc/internal/domain/service"
	mockUsecase "authsvc/internal/mocks/usecase"
	"authsvc/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*AuthHandler, *mockUsecase.MockAuthUsecase) {
	uc := mockUsecase.NewMockAuthUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewAuthHandler(uc, logger), uc
}

func newJSONContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register(t *testing.T) {
	h, uc := newTestHandler(t)
	c, rec := newJSONContext(http.MethodPost, "/register", `{"username":"alice","email":"a@x.io","password":"pw123"}`)

	uc.EXPECT().
		Register(mock.Anything, &usecase.RegisterInput{Username: "alice", Email: "a@x.io", Password: "pw123"}).
		Return(&usecase.RegisterOutput{Account: &entity.Account{ID: uuid.New(), Username: "alice"}}, nil)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"success":"User registered successfully"}`, rec.Body.String())
}

func TestAuthHandler_Register_AcceptsAnyEmailText(t *testing.T) {
	h, uc := newTestHandler(t)
	c, rec := newJSONContext(http.MethodPost, "/register", `{"username":"alice","email":"nope","password":"pw123"}`)

	uc.EXPECT().
		Register(mock.Anything, &usecase.RegisterInput{Username: "alice", Email: "nope", Password: "pw123"}).
		Return(&usecase.RegisterOutput{Account: &entity.Account{ID: uuid.New(), Username: "alice"}}, nil)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAuthHandler_Register_PropagatesUsecaseError(t *testing.T) {
	h, uc := newTestHandler(t)
	c, _ := newJSONContext(http.MethodPost, "/register", `{"username":"alice","email":"a@x.io","password":"pw123"}`)

	uc.EXPECT().
		Register(mock.Anything, mock.Anything).
		Return(nil, domainerrors.ErrUsernameTaken.WrapMessage("registration failed"))

	err := h.Register(c)
	assert.True(t, errors.Is(err, domainerrors.ErrUsernameTaken))
}

func TestAuthHandler_Register_InvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing email", body: `{"username":"alice","password":"pw123"}`},
		{name: "missing username", body: `{"email":"a@x.io","password":"pw123"}`},
		{name: "empty password", body: `{"username":"alice","email":"a@x.io","password":""}`},
		{name: "malformed json", body: `{"username":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(t)
			c, _ := newJSONContext(http.MethodPost, "/register", tt.body)

			err := h.Register(c)
			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	h, uc := newTestHandler(t)
	c, rec := newJSONContext(http.MethodPost, "/login", `{"username":"alice","password":"pw123"}`)

	uc.EXPECT().
		Login(mock.Anything, &usecase.LoginInput{Username: "alice", Password: "pw123"}).
		Return(&usecase.LoginOutput{Token: "a.b.c"}, nil)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":"Login successful","token":"a.b.c"}`, rec.Body.String())
}

func TestAuthHandler_Login_Failure(t *testing.T) {
	h, uc := newTestHandler(t)
	c, _ := newJSONContext(http.MethodPost, "/login", `{"username":"ghost","password":"x"}`)

	uc.EXPECT().
		Login(mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, *usecase.LoginInput) (*usecase.LoginOutput, error) {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("login failed")
		})

	err := h.Login(c)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
}

func TestAuthHandler_Profile(t *testing.T) {
	h, _ := newTestHandler(t)
	c, rec := newJSONContext(http.MethodGet, "/profile", "")

	accountID := uuid.MustParse("0190b8a2-1c2d-7000-8000-000000000001")
	deliverycontext.SetClaims(c, &service.Claims{AccountID: accountID, Username: "alice"})

	require.NoError(t, h.Profile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"success":"Access granted","user":{"id":"0190b8a2-1c2d-7000-8000-000000000001","username":"alice"}}`,
		rec.Body.String(),
	)
}

func TestAuthHandler_Profile_WithoutClaims(t *testing.T) {
	h, _ := newTestHandler(t)
	c, _ := newJSONContext(http.MethodGet, "/profile", "")

	err := h.Profile(c)
	assert.True(t, errors.Is(err, domainerrors.ErrAccessDenied))
}

func TestHealthCheck(t *testing.T) {
	c, rec := newJSONContext(http.MethodGet, "/health", "")

	require.NoError(t, HealthCheck(c))
	assert.JSONEq(t, `{"success":"Service is healthy"}`, rec.Body.String())
}
