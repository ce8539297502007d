package ports

import (
	"context"

	"washday/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for the
// notification outbox. Enqueueing happens inside the same transaction that
// changes the order; delivery and retries happen outside it.
type NotificationRepository interface {
	// Add enqueues a pending notification.
	Add(ctx context.Context, aggregate *notification.Notification) error

	// Update persists delivery bookkeeping after a send attempt.
	Update(ctx context.Context, aggregate *notification.Notification) error

	// GetAllPending retrieves pending notifications oldest first, capped
	// at limit. Used by the retry job.
	GetAllPending(ctx context.Context, limit int) ([]*notification.Notification, error)
}
