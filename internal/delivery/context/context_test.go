package context

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"authsvc/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEchoContext() echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestRequestID(t *testing.T) {
	c := newEchoContext()

	generated := RequestID(c)
	_, err := uuid.Parse(generated)
	require.NoError(t, err)

	SetRequestID(c, "req-1")
	assert.Equal(t, "req-1", RequestID(c))
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Empty(t, GetRequestIDFromContext(context.Background()))

	ctx := WithRequestID(context.Background(), "req-2")
	assert.Equal(t, "req-2", GetRequestIDFromContext(ctx))
}

func TestGetLoggerOrDefault(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
	scoped := slog.New(slog.NewJSONHandler(io.Discard, nil))

	assert.Same(t, fallback, GetLoggerOrDefault(context.Background(), fallback))
	assert.Same(t, scoped, GetLoggerOrDefault(WithLogger(context.Background(), scoped), fallback))
}

func TestClaims(t *testing.T) {
	c := newEchoContext()

	_, ok := GetClaims(c)
	assert.False(t, ok)

	claims := &service.Claims{AccountID: uuid.New(), Username: "alice"}
	SetClaims(c, claims)

	got, ok := GetClaims(c)
	require.True(t, ok)
	assert.Same(t, claims, got)
}
