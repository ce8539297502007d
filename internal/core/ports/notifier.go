package ports

import (
	"context"

	"washday/internal/core/domain/model/notification"
)

// Notifier delivers a queued notification to the customer-facing channel.
// Implementations publish to the message broker that the notification
// workers consume from. A returned error means the notification stays
// pending and is retried later.
type Notifier interface {
	Send(ctx context.Context, aggregate *notification.Notification) error
}
