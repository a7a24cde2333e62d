// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the only persisted identity in the system.
// Username and Email are each unique across all accounts. Accounts are never
// updated or deleted once created.
type Account struct {
	ID           uuid.UUID // Assigned by the credential store on insert.
	Username     string    // Login identifier.
	Email        string    // Contact address.
	PasswordHash string    `json:"-"` // bcrypt output, never the plaintext and never returned to callers.
	CreatedAt    time.Time // Set by the store on insert.
}
