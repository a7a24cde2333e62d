package persistence

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"authsvc/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewAccountRepository_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: "cassandra"}}

	_, err := NewAccountRepository(Params{Lc: fxtest.NewLifecycle(t), Config: cfg, Logger: newDiscardLogger()})

	assert.ErrorContains(t, err, "unknown store driver: cassandra")
}

func TestNewAccountRepository_MongoWithoutServer(t *testing.T) {
	cfg := &config.Config{
		Store: config.StoreConfig{Driver: config.StoreDriverMongo},
		Mongo: &config.MongoConfig{URI: "mongodb://127.0.0.1:1", Database: "authsvc", Timeout: 50 * time.Millisecond},
	}
	lc := fxtest.NewLifecycle(t)

	repo, err := NewAccountRepository(Params{Lc: lc, Config: cfg, Logger: newDiscardLogger()})
	require.NoError(t, err)
	assert.NotNil(t, repo)

	// Nothing listens on port 1, so startup must fail on the ping.
	assert.Error(t, lc.Start(t.Context()))
}
