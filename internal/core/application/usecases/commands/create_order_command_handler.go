package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"washday/internal/core/domain/model/customer"
	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/domain/model/laundromat"
	"washday/internal/core/domain/model/notification"
	"washday/internal/core/domain/model/order"
	"washday/internal/core/domain/services"
	"washday/internal/core/ports"
	"washday/internal/pkg/errs"
)

// ErrNoLaundromatAvailable is returned when no laundromat serves the pickup
// postal code or every candidate is booked out for the requested date.
// No order is created in that case.
var ErrNoLaundromatAvailable = errors.New("no laundromat available for this pickup")

// CreateOrderCommandHandler handles the business logic for scheduling a pickup.
// Finds or creates the customer, prices the order with the minimum charge
// floor, routes it to a laundromat with capacity for the pickup date, and
// queues the confirmation notification in the same transaction.
//
// Routing and reservation run together: candidates are ranked by remaining
// capacity and the handler reserves against each in turn, so an order that
// loses a race for the last slot falls through to the next laundromat
// instead of failing.
type CreateOrderCommandHandler struct {
	uowFactory             CreateOrderUoWFactory
	notificationUoWFactory NotificationUoWFactory
	notifier               ports.Notifier
	router                 services.LaundromatRouter
	minimumCharge          kernel.Money
}

// NewCreateOrderCommandHandler creates a handler for order intake.
func NewCreateOrderCommandHandler(
	uowFactory CreateOrderUoWFactory,
	notificationUoWFactory NotificationUoWFactory,
	notifier ports.Notifier,
	minimumCharge kernel.Money,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:             uowFactory,
		notificationUoWFactory: notificationUoWFactory,
		notifier:               notifier,
		router:                 services.NewLaundromatRouter(),
		minimumCharge:          minimumCharge,
	}
}

// CreateOrderResult reports what intake produced: the identifiers the caller
// needs to build the guest tracking link plus the priced amounts.
type CreateOrderResult struct {
	OrderID        kernel.UUID
	AccessToken    string
	TokenExpiresAt time.Time
	Subtotal       kernel.Money
	Total          kernel.Money
}

// Handle processes the order creation command.
// The order, the customer record, the capacity reservation and the queued
// notification commit atomically; the confirmation send happens after commit
// and never fails the request.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderCustomer, err := h.findOrCreateCustomer(ctx, uow, cmd)
	if err != nil {
		return CreateOrderResult{}, err
	}

	subtotal, err := cmd.ServiceType().EstimateSubtotal(cmd.DeclaredPounds(), cmd.AddOns())
	if err != nil {
		return CreateOrderResult{}, err
	}
	total, err := order.EstimateTotal(subtotal, h.minimumCharge)
	if err != nil {
		return CreateOrderResult{}, err
	}

	chosen, err := h.routeAndReserve(ctx, uow, cmd)
	if err != nil {
		return CreateOrderResult{}, err
	}

	token, err := kernel.NewAccessToken(now)
	if err != nil {
		return CreateOrderResult{}, err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(), orderCustomer.ID(),
		cmd.PickupAddress(), cmd.DeliveryAddress(),
		cmd.ServiceType(), cmd.DeclaredPounds(),
		cmd.PickupDate(), cmd.TimeWindow(),
		subtotal, total, token,
	)
	if err != nil {
		return CreateOrderResult{}, err
	}
	if err = newOrder.AssignLaundromat(chosen.ID()); err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return CreateOrderResult{}, err
	}

	queued, err := notification.NewNotification(
		kernel.NewUUID(), newOrder.ID(), notification.KindOrderScheduled,
		fmt.Sprintf("Your %s pickup is scheduled for %s (%s). Estimated total %s.",
			cmd.ServiceType(), cmd.PickupDate().Format("Mon, Jan 2"), cmd.TimeWindow(), total),
		now,
	)
	if err != nil {
		return CreateOrderResult{}, err
	}
	if err = uow.NotificationRepository().Add(ctx, queued); err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	deliverNotification(ctx, h.notificationUoWFactory, h.notifier, queued)

	return CreateOrderResult{
		OrderID:        newOrder.ID(),
		AccessToken:    token.Value(),
		TokenExpiresAt: token.ExpiresAt(),
		Subtotal:       subtotal,
		Total:          total,
	}, nil
}

func (h CreateOrderCommandHandler) findOrCreateCustomer(
	ctx context.Context, uow CreateOrderUoW, cmd CreateOrderCommand,
) (*customer.Customer, error) {
	customerRepo := uow.CustomerRepository()

	existing, err := customerRepo.GetByEmail(ctx, cmd.CustomerEmail())
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	guest, err := customer.NewCustomer(
		kernel.NewUUID(), cmd.CustomerName(), cmd.CustomerEmail(), cmd.CustomerPhone(), true)
	if err != nil {
		return nil, err
	}
	if err = customerRepo.Add(ctx, guest); err != nil {
		return nil, err
	}

	return guest, nil
}

// routeAndReserve ranks the candidate laundromats and takes a capacity slot
// from the best one that still has room. The conditional update in
// ReserveCapacity decides races; losing a race moves on to the next candidate.
func (h CreateOrderCommandHandler) routeAndReserve(
	ctx context.Context, uow CreateOrderUoW, cmd CreateOrderCommand,
) (*laundromat.Laundromat, error) {
	laundromatRepo := uow.LaundromatRepository()
	postalCode := cmd.PickupAddress().PostalCode()
	date := laundromat.DateKey(cmd.PickupDate())

	candidates, err := laundromatRepo.GetAllByPostalCode(ctx, postalCode)
	if err != nil {
		return nil, err
	}

	remaining := make(map[string]int, len(candidates))
	for _, l := range candidates {
		day, err := laundromatRepo.GetCapacityDay(ctx, l.ID(), date)
		if err != nil {
			return nil, err
		}
		remaining[l.ID().String()] = day.Remaining()
	}

	ranked, err := h.router.Rank(postalCode, candidates, remaining)
	if errors.Is(err, services.ErrNoCoverage) {
		return nil, ErrNoLaundromatAvailable
	}
	if err != nil {
		return nil, err
	}

	for _, l := range ranked {
		err := laundromatRepo.ReserveCapacity(ctx, l.ID(), date)
		if errors.Is(err, laundromat.ErrCapacityExceeded) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return l, nil
	}

	return nil, ErrNoLaundromatAvailable
}
