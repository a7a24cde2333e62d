package service

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidSignature covers every token that does not verify under the signing key,
	// including tampered and malformed tokens.
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrTokenExpired is returned for a correctly signed token past its expiry.
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the identity carried by an issued token: {id, username, iat, exp}.
type Claims struct {
	AccountID uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	jwt.RegisteredClaims
}

// TokenService mints and validates signed, time-bounded identity assertions.
type TokenService interface {
	// Issue creates a signed token for the account, expiring after a fixed lifetime.
	Issue(accountID uuid.UUID, username string) (string, error)

	// Verify checks the signature and expiry of token and returns its claims unchanged.
	Verify(token string) (*Claims, error)
}
