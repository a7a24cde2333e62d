// Package response writes the service's flat JSON bodies:
// {"success": "..."} for results and {"error": "..."} for failures.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SuccessResponse is the body of every 2xx reply. Token and User are route specific.
type SuccessResponse struct {
	Success string `json:"success"`
	Token   string `json:"token,omitempty"`
	User    any    `json:"user,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func Success(c echo.Context, statusCode int, body SuccessResponse) error {
	return c.JSON(statusCode, body)
}

func Message(c echo.Context, statusCode int, message string) error {
	return Success(c, statusCode, SuccessResponse{Success: message})
}

func Error(c echo.Context, statusCode int, message string) error {
	if c.Request().Method == http.MethodHead {
		return c.NoContent(statusCode)
	}

	return c.JSON(statusCode, ErrorResponse{Error: message})
}
