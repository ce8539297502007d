package commands

import (
	"context"
	"errors"
	"time"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/domain/model/laundromat"
	"washday/internal/core/domain/model/notification"
	"washday/internal/core/domain/model/order"
	"washday/internal/core/ports"
	"washday/internal/pkg/errs"
)

// ErrAccessTokenExpired is returned when a tracking link is used past its
// expiry.
var ErrAccessTokenExpired = errors.New("access token expired")

// CancelOrderCommandHandler cancels orders. The lifecycle gate decides
// whether the current state still allows it: the check runs against the
// freshly loaded aggregate inside the transaction, so a cancellation racing
// a driver's delivered transition loses cleanly instead of clobbering it.
//
// Cancelling before pickup gives the reserved capacity slot back to the
// laundromat for that date.
type CancelOrderCommandHandler struct {
	uowFactory             CancelOrderUoWFactory
	notificationUoWFactory NotificationUoWFactory
	notifier               ports.Notifier
}

// NewCancelOrderCommandHandler creates a handler for order cancellations.
func NewCancelOrderCommandHandler(
	uowFactory CancelOrderUoWFactory,
	notificationUoWFactory NotificationUoWFactory,
	notifier ports.Notifier,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory:             uowFactory,
		notificationUoWFactory: notificationUoWFactory,
		notifier:               notifier,
	}
}

// Handle processes the cancellation command.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	return h.cancel(ctx, uow, aggregate, cmd.ActorID(), cmd.ActorRole(), now)
}

// HandleByToken cancels an order through its guest tracking token. The token
// is the capability: whoever holds a live link may cancel, acting as the
// order's customer.
func (h CancelOrderCommandHandler) HandleByToken(ctx context.Context, token string) error {
	if token == "" {
		return errs.NewValueIsRequiredError("access token")
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().GetByAccessToken(ctx, token)
	if err != nil {
		return err
	}

	if aggregate.AccessToken().IsExpired(now) {
		return ErrAccessTokenExpired
	}

	return h.cancel(ctx, uow, aggregate, aggregate.CustomerID(), kernel.RoleCustomer, now)
}

func (h CancelOrderCommandHandler) cancel(
	ctx context.Context,
	uow CancelOrderUoW,
	aggregate *order.Order,
	actorID kernel.UUID,
	actorRole kernel.Role,
	now time.Time,
) error {
	// A customer may only cancel their own order. The aggregate existing is
	// not something a stranger guessing IDs should learn, so this reads as a
	// missing order rather than a forbidden one.
	if actorRole == kernel.RoleCustomer && !actorID.IsEqual(aggregate.CustomerID()) {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}

	beforePickup := aggregate.Status() == order.StatusScheduled ||
		aggregate.Status() == order.StatusEnRoutePickup

	if err := aggregate.Cancel(actorRole, actorID, now); err != nil {
		return err
	}

	if err := uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if beforePickup && aggregate.Laundromat() != nil {
		err := uow.LaundromatRepository().ReleaseCapacity(
			ctx, *aggregate.Laundromat(), laundromat.DateKey(aggregate.PickupDate()))
		if err != nil {
			return err
		}
	}

	queued, err := notification.NewNotification(
		kernel.NewUUID(), aggregate.ID(), notification.KindOrderCancelled,
		"Your order has been cancelled. You will not be charged.", now,
	)
	if err != nil {
		return err
	}
	if err = uow.NotificationRepository().Add(ctx, queued); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	deliverNotification(ctx, h.notificationUoWFactory, h.notifier, queued)

	return nil
}
