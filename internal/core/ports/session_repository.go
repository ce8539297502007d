package ports

import (
	"context"

	"washday/internal/core/domain/model/session"
)

// SessionRepository defines the persistence contract for auth sessions.
type SessionRepository interface {
	// Add persists a newly issued session.
	Add(ctx context.Context, aggregate *session.Session) error

	// GetByToken retrieves a session by its bearer token. Expiry is the
	// caller's concern.
	GetByToken(ctx context.Context, token string) (*session.Session, error)

	// Delete removes a session, logging the actor out.
	Delete(ctx context.Context, token string) error
}
