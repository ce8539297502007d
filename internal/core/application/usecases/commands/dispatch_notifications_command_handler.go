package commands

import (
	"context"
	"time"

	"washday/internal/core/domain/model/notification"
	"washday/internal/core/ports"
)

// DispatchNotificationsCommandHandler delivers pending outbox notifications.
// Runs on a timer and also serves as the retry path for sends that failed
// right after an order commit.
//
// Sends happen outside any transaction so a slow broker never holds a
// database lock. The bookkeeping write for the whole batch commits at the
// end; at-least-once delivery is the contract, duplicates are possible when
// that write fails.
type DispatchNotificationsCommandHandler struct {
	uowFactory NotificationUoWFactory
	notifier   ports.Notifier
}

// NewDispatchNotificationsCommandHandler creates a handler for the outbox sweep.
func NewDispatchNotificationsCommandHandler(
	uowFactory NotificationUoWFactory,
	notifier ports.Notifier,
) DispatchNotificationsCommandHandler {
	return DispatchNotificationsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle delivers up to the command's limit of pending notifications and
// returns how many went out.
func (h DispatchNotificationsCommandHandler) Handle(
	ctx context.Context, cmd DispatchNotificationsCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	pending, err := h.fetchPending(ctx, cmd.Limit())
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	sent := 0
	for _, queued := range pending {
		if err := h.notifier.Send(ctx, queued); err != nil {
			queued.MarkAttemptFailed()
			continue
		}
		queued.MarkSent(now)
		sent++
	}

	if err := h.persistResults(ctx, pending); err != nil {
		return sent, err
	}

	return sent, nil
}

func (h DispatchNotificationsCommandHandler) fetchPending(
	ctx context.Context, limit int,
) ([]*notification.Notification, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pending, err := uow.NotificationRepository().GetAllPending(ctx, limit)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return pending, nil
}

func (h DispatchNotificationsCommandHandler) persistResults(
	ctx context.Context, batch []*notification.Notification,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	notificationRepo := uow.NotificationRepository()
	for _, queued := range batch {
		if err := notificationRepo.Update(ctx, queued); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
