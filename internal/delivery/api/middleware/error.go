package middleware

import (
	"log/slog"
	"net/http"

	"authsvc/internal/delivery/api/response"
	deliverycontext "authsvc/internal/delivery/context"
	domainerrors "authsvc/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware is the single place where errors become HTTP replies.
type ErrorMiddleware struct {
	logger *slog.Logger
}

func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError is installed as echo's HTTPErrorHandler.
// Only the user-facing message of an AppError is exposed; everything else becomes a bare 500.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			logger.Error("Request failed",
				slog.String("error_code", appErr.ErrorCode()),
				slog.Any("error", err),
			)
		} else {
			logger.Debug("Request rejected",
				slog.String("error_code", appErr.ErrorCode()),
				slog.Int("status", appErr.HTTPCode()),
			)
		}
		_ = response.Error(c, appErr.HTTPCode(), appErr.Message())

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok && msg != "" {
			message = msg
		}
		_ = response.Error(c, httpErr.Code, message)

		return
	}

	internalErr := domainerrors.ErrInternalError
	logger.Error("Unhandled error",
		slog.String("error_code", internalErr.ErrorCode()),
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	_ = response.Error(c, internalErr.HTTPCode(), internalErr.Message())
}
