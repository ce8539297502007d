package commands

import (
	"context"
	"fmt"
	"time"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/domain/model/notification"
	"washday/internal/core/domain/model/order"
	"washday/internal/core/ports"
)

// ChangeOrderStatusCommandHandler applies lifecycle transitions to orders.
// Loads the aggregate, lets the domain gate decide whether the move is legal
// for this actor, and persists the change with a version check so two
// concurrent writers cannot both win.
//
// The delivered transition captures payment before the commit: a declined
// capture rolls the whole transition back and the order stays en route.
type ChangeOrderStatusCommandHandler struct {
	uowFactory             OrderUoWFactory
	notificationUoWFactory NotificationUoWFactory
	notifier               ports.Notifier
	paymentClient          ports.PaymentClient
}

// NewChangeOrderStatusCommandHandler creates a handler for status transitions.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notificationUoWFactory NotificationUoWFactory,
	notifier ports.Notifier,
	paymentClient ports.PaymentClient,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory:             uowFactory,
		notificationUoWFactory: notificationUoWFactory,
		notifier:               notifier,
		paymentClient:          paymentClient,
	}
}

// ChangeOrderStatusResult is the snapshot of the order after a successful
// transition.
type ChangeOrderStatusResult struct {
	OrderID            kernel.UUID
	Status             order.Status
	Version            int
	WeightOunces       *int
	DeliveryNotes      string
	PickedUpAt         *time.Time
	ReadyForDeliveryAt *time.Time
	DeliveredAt        *time.Time
}

// Handle processes the transition command and returns a snapshot of the
// updated order.
// The order write, its history entry and the queued notification commit
// together; the notification send happens after commit and never fails the
// transition.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (ChangeOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}

	switch cmd.Target() {
	case order.StatusPickedUp:
		err = aggregate.RecordPickup(*cmd.WeightOunces(), cmd.PhotoKey(), cmd.ActorRole(), cmd.ActorID(), now)
	case order.StatusDelivered:
		err = aggregate.RecordDelivery(cmd.DeliveryNotes(), cmd.ActorRole(), cmd.ActorID(), now)
	default:
		err = aggregate.ChangeStatus(cmd.Target(), cmd.ActorRole(), cmd.ActorID(), now)
	}
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	queued, err := notification.NewNotification(
		kernel.NewUUID(), aggregate.ID(), notification.KindStatusChanged,
		statusMessage(aggregate), now,
	)
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}
	if err = uow.NotificationRepository().Add(ctx, queued); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	// Payment is captured last, when everything else is already staged in
	// the transaction. A decline rolls back the delivered transition.
	if cmd.Target() == order.StatusDelivered {
		if err = h.paymentClient.Capture(ctx, aggregate.ID(), aggregate.Total()); err != nil {
			return ChangeOrderStatusResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	deliverNotification(ctx, h.notificationUoWFactory, h.notifier, queued)

	// The repository increments the persisted version on update; the
	// in-memory aggregate still holds the loaded one.
	return ChangeOrderStatusResult{
		OrderID:            aggregate.ID(),
		Status:             aggregate.Status(),
		Version:            aggregate.Version() + 1,
		WeightOunces:       aggregate.WeightOunces(),
		DeliveryNotes:      aggregate.DeliveryNotes(),
		PickedUpAt:         aggregate.PickedUpAt(),
		ReadyForDeliveryAt: aggregate.ReadyForDeliveryAt(),
		DeliveredAt:        aggregate.DeliveredAt(),
	}, nil
}

func statusMessage(aggregate *order.Order) string {
	switch aggregate.Status() {
	case order.StatusEnRoutePickup:
		return "Your driver is on the way to pick up your laundry."
	case order.StatusPickedUp:
		return "Your laundry has been picked up and weighed."
	case order.StatusProcessing:
		return "Your laundry is being washed."
	case order.StatusReadyForDelivery:
		return "Your laundry is clean and ready for delivery."
	case order.StatusEnRouteDelivery:
		return "Your driver is on the way with your clean laundry."
	case order.StatusDelivered:
		return fmt.Sprintf("Your laundry has been delivered. Total charged: %s.", aggregate.Total())
	default:
		return fmt.Sprintf("Your order is now %s.", aggregate.Status())
	}
}
