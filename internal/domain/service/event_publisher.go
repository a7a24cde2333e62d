package service

import (
	"context"
	"time"
)

// AccountRegisteredEvent is emitted once an account has been stored.
type AccountRegisteredEvent struct {
	RequestID    string    `json:"request_id,omitempty"` // For distributed tracing
	AccountID    string    `json:"account_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishAccountRegistered announces a newly created account.
	PublishAccountRegistered(ctx context.Context, event *AccountRegisteredEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
