package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"authsvc/internal/domain/entity"
	"authsvc/internal/domain/repository"
	"authsvc/internal/infra/persistence/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	selectAccountByUsername = regexp.QuoteMeta(`SELECT * FROM "accounts" WHERE "accounts"."username" = $1`)
	insertAccount           = regexp.QuoteMeta(`INSERT INTO "accounts"`)
)

func newRepoWithMock(t *testing.T) (repository.AccountRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	return NewAccountRepository(db), mock
}

func TestAccountRepository_FindByUsername(t *testing.T) {
	t.Run("missing account", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(selectAccountByUsername).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}))

		account, err := repo.FindByUsername(context.Background(), "ghost")

		require.NoError(t, err)
		assert.Nil(t, account)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("existing account", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		id := uuid.Must(uuid.NewV7())
		createdAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		mock.ExpectQuery(selectAccountByUsername).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
				AddRow(id.String(), "alice", "a@x.io", "hash", createdAt))

		account, err := repo.FindByUsername(context.Background(), "alice")

		require.NoError(t, err)
		require.NotNil(t, account)
		assert.Equal(t, id, account.ID)
		assert.Equal(t, "alice", account.Username)
		assert.Equal(t, "a@x.io", account.Email)
		assert.Equal(t, "hash", account.PasswordHash)
		assert.True(t, createdAt.Equal(account.CreatedAt))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("connection failure", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(selectAccountByUsername).
			WillReturnError(errors.New("dial tcp: connection refused"))

		account, err := repo.FindByUsername(context.Background(), "alice")

		assert.Nil(t, account)
		assert.ErrorIs(t, err, repository.ErrStoreUnavailable)
		assert.ErrorContains(t, err, "connection refused")
	})
}

func TestAccountRepository_Insert(t *testing.T) {
	t.Run("stores account", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(insertAccount).
			WithArgs(sqlmock.AnyArg(), "alice", "a@x.io", "hash", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		account := &entity.Account{Username: "alice", Email: "a@x.io", PasswordHash: "hash"}

		before := time.Now().UTC().Truncate(time.Microsecond)
		err := repo.Insert(context.Background(), account)

		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), account.ID.Version())
		assert.False(t, account.CreatedAt.Before(before))
		assert.Equal(t, time.UTC, account.CreatedAt.Location())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate key", func(t *testing.T) {
		tests := []struct {
			name       string
			constraint string
			wantField  string
		}{
			{name: "username", constraint: model.IndexAccountsUsername, wantField: repository.FieldUsername},
			{name: "email", constraint: model.IndexAccountsEmail, wantField: repository.FieldEmail},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo, mock := newRepoWithMock(t)
				mock.ExpectExec(insertAccount).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: tt.constraint})
				account := &entity.Account{Username: "alice", Email: "a@x.io", PasswordHash: "hash"}

				err := repo.Insert(context.Background(), account)

				var dupErr *repository.DuplicateKeyError
				require.ErrorAs(t, err, &dupErr)
				assert.Equal(t, tt.wantField, dupErr.Field)
				assert.NotErrorIs(t, err, repository.ErrStoreUnavailable)
				assert.Equal(t, uuid.Nil, account.ID)
				assert.True(t, account.CreatedAt.IsZero())
			})
		}
	})

	t.Run("connection failure", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(insertAccount).
			WillReturnError(errors.New("driver: bad connection"))

		err := repo.Insert(context.Background(), &entity.Account{Username: "alice", Email: "a@x.io", PasswordHash: "hash"})

		assert.ErrorIs(t, err, repository.ErrStoreUnavailable)
		assert.NotErrorIs(t, err, repository.ErrDuplicateKey)
	})
}
