// Package postgres contains the PostgreSQL implementation of the credential store using GORM.
package postgres

import (
	"context"
	"time"

	"authsvc/internal/domain/entity"
	"authsvc/internal/domain/repository"
	"authsvc/internal/infra/persistence/model"
	"authsvc/internal/infra/persistence/postgres/query"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type accountRepository struct {
	q *query.Query
}

// NewAccountRepository returns the GORM backed AccountRepository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{
		q: query.Use(db),
	}
}

func (repo *accountRepository) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	accountM, err := repo.q.AccountModel.WithContext(ctx).
		Where(repo.q.AccountModel.Username.Eq(username)).
		Take()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, repository.NewStoreUnavailableError("find account by username", err)
	}

	return toAccountDomain(accountM), nil
}

// Insert relies on the unique indexes of the accounts table to reject duplicates atomically.
func (repo *accountRepository) Insert(ctx context.Context, account *entity.Account) error {
	id, err := uuid.NewV7()
	if err != nil {
		return errors.WithStack(err)
	}

	accountM := fromAccountDomain(account)
	accountM.ID = id
	// Postgres keeps microseconds.
	accountM.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)

	if err := repo.q.AccountModel.WithContext(ctx).Create(accountM); err != nil {
		if field, ok := duplicateKeyField(err); ok {
			return errors.WithStack(&repository.DuplicateKeyError{Field: field})
		}

		return repository.NewStoreUnavailableError("insert account", err)
	}

	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt

	return nil
}

func toAccountDomain(data *model.AccountModel) *entity.Account {
	return &entity.Account{
		ID:           data.ID,
		Username:     data.Username,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
	}
}

func fromAccountDomain(data *entity.Account) *model.AccountModel {
	return &model.AccountModel{
		ID:           data.ID,
		Username:     data.Username,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
	}
}
