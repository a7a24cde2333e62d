package middleware

import (
	"strings"

	deliverycontext "authsvc/internal/delivery/context"
	"authsvc/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	headerAuthorization = "Authorization"
	bearerPrefix        = "Bearer "
)

// AuthMiddleware gates routes on a valid token in the authorization header.
type AuthMiddleware struct {
	uc usecase.AuthUsecase
}

func NewAuthMiddleware(uc usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{uc: uc}
}

// Authenticate accepts the raw token or "Bearer <token>" and stores the verified claims on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := strings.TrimSpace(c.Request().Header.Get(headerAuthorization))
		if len(token) > len(bearerPrefix) && strings.EqualFold(token[:len(bearerPrefix)], bearerPrefix) {
			token = strings.TrimSpace(token[len(bearerPrefix):])
		}

		claims, err := m.uc.Authenticate(c.Request().Context(), token)
		if err != nil {
			return errors.WithStack(err)
		}

		deliverycontext.SetClaims(c, claims)

		return next(c)
	}
}
