// Package persistence selects the credential store backend.
package persistence

import (
	"log/slog"

	"authsvc/config"
	"authsvc/internal/domain/repository"
	"authsvc/internal/infra/persistence/mongo"
	"authsvc/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewAccountRepository opens the backend named by store.driver.
// Only the chosen backend registers lifecycle hooks.
func NewAccountRepository(params Params) (repository.AccountRepository, error) {
	driver := params.Config.Store.Driver
	params.Logger.Info("Using credential store", slog.String("driver", driver))

	switch driver {
	case config.StoreDriverMongo:
		db, err := mongo.New(mongo.Params{Lifecycle: params.Lc, Config: params.Config, Logger: params.Logger})
		if err != nil {
			return nil, err
		}

		return mongo.NewAccountRepository(params.Lc, db), nil

	case config.StoreDriverPostgres:
		db, err := postgres.New(postgres.Params{Lifecycle: params.Lc, Config: params.Config, Logger: params.Logger})
		if err != nil {
			return nil, err
		}

		return postgres.NewAccountRepository(db), nil

	default:
		return nil, errors.Errorf("unknown store driver: %s", driver)
	}
}
