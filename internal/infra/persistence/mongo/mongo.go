// Package mongo contains the MongoDB implementation of the credential store.
package mongo

import (
	"context"
	"log/slog"

	"authsvc/config"
	"authsvc/internal/domain/lifecycle"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/fx"
)

type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the client lazily; the server is first contacted by the OnStart ping.
func New(params Params) (*mongo.Database, error) {
	cfg := params.Config.Mongo
	if cfg == nil {
		return nil, errors.New("mongo configuration is missing")
	}

	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.Timeout).
		SetTimeout(cfg.Timeout)

	client, err := mongo.Connect(context.Background(), clientOpts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MongoDB client")
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx, readpref.Primary()); err != nil {
				params.Logger.Error("MongoDB unreachable", slog.Any("error", err))

				return errors.Wrap(err, "failed to ping MongoDB")
			}

			params.Logger.Info("Connected to MongoDB", slog.String("database", cfg.Database))

			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			return errors.WithStack(client.Disconnect(stopCtx))
		},
	})

	return client.Database(cfg.Database), nil
}
