package model

import (
	"time"

	"github.com/google/uuid"
)

// Unique index names on the accounts table. Insert conflicts are attributed to a field by these names.
const (
	IndexAccountsUsername = "uniq_accounts_username"
	IndexAccountsEmail    = "uniq_accounts_email"
)

// AccountModel mirrors the 'accounts' table. IDs are UUIDv7 assigned by the application.
type AccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"type:varchar(255);not null;uniqueIndex:uniq_accounts_username"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:uniq_accounts_email"`
	PasswordHash string    `gorm:"type:varchar(72);not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
