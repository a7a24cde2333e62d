// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "errors"

var (
	// ErrMalformedHash means the stored value was not produced by the hasher.
	ErrMalformedHash = errors.New("malformed password hash")
	// ErrPasswordTooLong means the plaintext exceeds what the algorithm can hash.
	ErrPasswordTooLong = errors.New("password too long")
)

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	// Two calls with the same input return different values.
	Hash(password string) (string, error)

	// Check reports whether password matches hash. A mismatch is (false, nil);
	// only a hash this hasher could not have produced returns ErrMalformedHash.
	Check(password, hash string) (bool, error)
}
