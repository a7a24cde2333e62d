// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"authsvc/internal/domain/entity"
	"authsvc/internal/domain/service"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Username string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account.
type RegisterOutput struct {
	Account *entity.Account
}

// LoginOutput returns the token issued after a successful login.
type LoginOutput struct {
	Token string
}

// AuthUsecase defines the credential-and-token lifecycle operations.
// Each call is independent; no state is kept between calls.
type AuthUsecase interface {
	// Register stores a new account. Fails with ErrUsernameTaken or ErrEmailTaken on conflict.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Login verifies credentials and issues a token.
	// Fails with ErrAccountNotFound or ErrInvalidPassword.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Authenticate validates a presented token and returns its claims.
	// An empty token fails with ErrAccessDenied, an invalid or expired one with ErrInvalidToken.
	Authenticate(ctx context.Context, token string) (*service.Claims, error)
}
