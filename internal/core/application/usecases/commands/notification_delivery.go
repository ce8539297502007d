package commands

import (
	"context"
	"time"

	"washday/internal/core/domain/model/notification"
	"washday/internal/core/ports"
)

// deliverNotification attempts immediate delivery of a notification that was
// already committed to the outbox. Runs after the order transaction commits,
// so failures here never undo an order change. A failed send leaves the
// notification pending for the retry job; a successful send is recorded in
// its own small transaction, and if that bookkeeping fails the worst case is
// one duplicate message later.
func deliverNotification(
	ctx context.Context,
	uowFactory NotificationUoWFactory,
	notifier ports.Notifier,
	queued *notification.Notification,
) {
	if err := notifier.Send(ctx, queued); err != nil {
		return
	}

	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	queued.MarkSent(time.Now().UTC())
	if err := uow.NotificationRepository().Update(ctx, queued); err != nil {
		return
	}

	_ = uow.Commit(ctx)
}
