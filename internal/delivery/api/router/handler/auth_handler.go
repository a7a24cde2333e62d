// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"authsvc/internal/delivery/api/response"
	deliverycontext "authsvc/internal/delivery/context"
	domainerrors "authsvc/internal/domain/errors"
	"authsvc/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthHandler holds dependencies for the credential routes.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles POST /register.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	_, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusCreated, "User registered successfully")
}

// Login handles POST /login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, response.SuccessResponse{
		Success: "Login successful",
		Token:   output.Token,
	})
}

// Profile handles GET /profile. It must run behind AuthMiddleware.Authenticate.
func (h *AuthHandler) Profile(c echo.Context) error {
	claims, ok := deliverycontext.GetClaims(c)
	if !ok {
		return domainerrors.ErrAccessDenied.WrapMessage("no verified claims on request")
	}

	return response.Success(c, http.StatusOK, response.SuccessResponse{
		Success: "Access granted",
		User:    claims,
	})
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}
	if err := c.Validate(req); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	return nil
}
