// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"fmt"

	"authsvc/internal/domain/entity"
)

// Store-level failures. Callers match them with errors.Is.
var (
	// ErrDuplicateKey is returned by Insert when a unique field is already taken.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrStoreUnavailable is returned when the backing database cannot serve the request.
	ErrStoreUnavailable = errors.New("credential store unavailable")
)

// Unique account fields reported by DuplicateKeyError.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
)

// DuplicateKeyError reports which unique field rejected an insert.
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key: %s already exists", e.Field)
}

// Is makes errors.Is(err, ErrDuplicateKey) hold for every DuplicateKeyError.
func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// AccountRepository persists accounts and enforces username/email uniqueness.
type AccountRepository interface {
	// FindByUsername returns the account with the given username.
	// A missing account is reported as (nil, nil), not as an error.
	FindByUsername(ctx context.Context, username string) (*entity.Account, error)

	// Insert atomically stores a new account and fills in its ID and CreatedAt.
	// Uniqueness is checked by the store itself, so two concurrent inserts of the
	// same username cannot both succeed. Fails with a *DuplicateKeyError or
	// ErrStoreUnavailable.
	Insert(ctx context.Context, account *entity.Account) error
}

// StoreUnavailableError wraps a driver failure. It matches ErrStoreUnavailable
// and still unwraps to the driver error for logging.
type StoreUnavailableError struct {
	Op  string
	Err error
}

// NewStoreUnavailableError records that op failed because of err.
func NewStoreUnavailableError(op string, err error) error {
	return &StoreUnavailableError{Op: op, Err: err}
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() []error {
	return []error{ErrStoreUnavailable, e.Err}
}
