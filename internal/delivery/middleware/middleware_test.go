package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"authsvc/config"
	deliverycontext "authsvc/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware_Process(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		wantSame bool
	}{
		{name: "generated when absent"},
		{name: "propagated from caller", incoming: "trace-abc", wantSame: true},
		{name: "oversized id replaced", incoming: strings.Repeat("x", maxRequestIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(deliverycontext.HeaderXRequestID, tt.incoming)
			}
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(req, rec)

			m := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

			var ctxID string
			err := m.Process(func(c echo.Context) error {
				ctxID = deliverycontext.GetRequestIDFromContext(c.Request().Context())

				return nil
			})(c)
			require.NoError(t, err)

			headerID := rec.Header().Get(deliverycontext.HeaderXRequestID)
			assert.NotEmpty(t, headerID)
			assert.Equal(t, headerID, ctxID)
			assert.Equal(t, headerID, deliverycontext.RequestID(c))
			if tt.wantSame {
				assert.Equal(t, tt.incoming, headerID)
			} else {
				assert.NotEqual(t, tt.incoming, headerID)
			}
		})
	}
}

func TestAccessLogMiddleware_Handle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	cfg := &config.Config{}
	cfg.Env.Debug = true

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	deliverycontext.SetRequestID(c, "req-42")

	err := NewAccessLogMiddleware(logger, cfg).Handle(func(echo.Context) error {
		return echo.ErrNotFound
	})(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, buf.String(), `"status":404`)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Equal(t, 1, strings.Count(buf.String(), `"request_id":"req-42"`))
}

func TestAccessLogMiddleware_BehindRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	cfg := &config.Config{}
	cfg.Env.Debug = true

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "trace-abc")
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	handler := NewRequestIDMiddleware(logger).Process(
		NewAccessLogMiddleware(logger, cfg).Handle(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		}),
	)

	require.NoError(t, handler(c))
	assert.Equal(t, 1, strings.Count(buf.String(), `"request_id":"trace-abc"`))
	assert.Contains(t, buf.String(), `"level":"INFO"`)
}

func TestAccessLogMiddleware_Disabled(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	err := NewAccessLogMiddleware(logger, &config.Config{}).Handle(func(echo.Context) error {
		return echo.ErrNotFound
	})(c)

	assert.ErrorIs(t, err, echo.ErrNotFound)
	assert.Empty(t, buf.String())
}
