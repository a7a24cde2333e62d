// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"authsvc/internal/delivery/api/middleware"
	"authsvc/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
}

type router struct {
	authHandler    *handler.AuthHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	e.POST("/register", r.authHandler.Register)
	e.POST("/login", r.authHandler.Login)
	e.GET("/profile", r.authHandler.Profile, r.authMiddleware.Authenticate)
}
