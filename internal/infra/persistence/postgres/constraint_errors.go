package postgres

import (
	"authsvc/internal/domain/repository"
	"authsvc/internal/infra/persistence/model"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// duplicateKeyField reports which unique field an insert collided on.
func duplicateKeyField(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgerrcode.UniqueViolation {
			return "", false
		}
		if pgErr.ConstraintName == model.IndexAccountsEmail {
			return repository.FieldEmail, true
		}

		return repository.FieldUsername, true
	}

	// Translated errors lose the constraint name.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repository.FieldUsername, true
	}

	return "", false
}
