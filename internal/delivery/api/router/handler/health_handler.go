package handler

import (
	"net/http"

	"authsvc/internal/delivery/api/response"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports liveness only; it does not touch the store.
func HealthCheck(c echo.Context) error {
	return response.Message(c, http.StatusOK, "Service is healthy")
}
