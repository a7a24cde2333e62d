package postgres

import (
	"fmt"
	"testing"

	"authsvc/internal/domain/entity"
	"authsvc/internal/domain/repository"
	"authsvc/internal/infra/persistence/model"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestDuplicateKeyField(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantField string
		wantOK    bool
	}{
		{
			name:      "username index",
			err:       &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: model.IndexAccountsUsername},
			wantField: repository.FieldUsername,
			wantOK:    true,
		},
		{
			name:      "email index wrapped by gorm",
			err:       fmt.Errorf("create: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: model.IndexAccountsEmail}),
			wantField: repository.FieldEmail,
			wantOK:    true,
		},
		{
			name:      "translated gorm error",
			err:       errors.WithStack(gorm.ErrDuplicatedKey),
			wantField: repository.FieldUsername,
			wantOK:    true,
		},
		{
			name: "not null violation",
			err:  &pgconn.PgError{Code: pgerrcode.NotNullViolation, ConstraintName: model.IndexAccountsEmail},
		},
		{
			name: "connection error",
			err:  errors.New("dial tcp: connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, ok := duplicateKeyField(tt.err)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantField, field)
		})
	}
}

func TestAccountModelMapping(t *testing.T) {
	account := &entity.Account{Username: "alice", Email: "a@x.io", PasswordHash: "hash"}

	got := toAccountDomain(fromAccountDomain(account))

	assert.Equal(t, account, got)
}
