package middleware

import (
	"log/slog"
	"time"

	"authsvc/config"
	deliverycontext "authsvc/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// AccessLogMiddleware writes one line per request when debug mode is on.
type AccessLogMiddleware struct {
	logger *slog.Logger
	debug  bool
}

func NewAccessLogMiddleware(logger *slog.Logger, cfg *config.Config) *AccessLogMiddleware {
	return &AccessLogMiddleware{
		logger: logger,
		debug:  cfg.Env.Debug,
	}
}

func (m *AccessLogMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.debug {
			return next(c)
		}

		start := time.Now()
		err := next(c)
		if err != nil {
			// Resolve the status now; echo only runs the error handler after the chain returns.
			c.Error(err)
		}
		m.logRequest(c, start, err)

		return nil
	}
}

func (m *AccessLogMiddleware) logRequest(c echo.Context, start time.Time, err error) {
	req := c.Request()
	status := c.Response().Status

	attrs := []slog.Attr{
		slog.String("request_id", deliverycontext.RequestID(c)),
		slog.String("method", req.Method),
		slog.String("uri", req.URL.Path),
		slog.Int("status", status),
		slog.Duration("latency", time.Since(start)),
		slog.String("remote_ip", c.RealIP()),
	}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}

	level := slog.LevelInfo
	switch {
	case status >= 500:
		level = slog.LevelError
	case status >= 400:
		level = slog.LevelWarn
	}

	m.logger.LogAttrs(req.Context(), level, "HTTP request", attrs...)
}
