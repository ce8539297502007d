package commands

import (
	"errors"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/domain/model/order"
	"washday/internal/pkg/errs"
	"washday/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand represents a request to move an order along its
// lifecycle. The picked_up transition additionally carries the measured
// weight and the intake photo key.
//
// Example:
//
//	cmd, err := NewChangeOrderStatusCommand(orderID, order.StatusEnRoutePickup,
//	    driverID, kernel.RoleDriver, nil, "", "")
//	if err != nil {
//	    return fmt.Errorf("invalid transition request: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("transition failed: %w", err)
//	}
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	target       order.Status
	actorID      kernel.UUID
	actorRole    kernel.Role
	weightOunces  *int
	photoKey      string
	deliveryNotes string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to apply a status transition.
// weightOunces and photoKey are only meaningful for the picked_up target;
// the weight is required there and rejected elsewhere. deliveryNotes only
// applies to the delivered target and is optional.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	actorID kernel.UUID,
	actorRole kernel.Role,
	weightOunces *int,
	photoKey string,
	deliveryNotes string,
) (ChangeOrderStatusCommand, error) {
	statusCommand := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setOrderID(orderID),
		statusCommand.setTarget(target),
		statusCommand.setActor(actorID, actorRole),
		statusCommand.setPickupPayload(target, weightOunces, photoKey),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	statusCommand.deliveryNotes = deliveryNotes
	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being moved.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested destination status.
func (c ChangeOrderStatusCommand) Target() order.Status {
	return c.target
}

// ActorID returns who requested the transition.
func (c ChangeOrderStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the requesting actor's role.
func (c ChangeOrderStatusCommand) ActorRole() kernel.Role {
	return c.actorRole
}

// WeightOunces returns the measured weight for the picked_up transition.
func (c ChangeOrderStatusCommand) WeightOunces() *int {
	return c.weightOunces
}

// PhotoKey returns the intake photo storage key for the picked_up transition.
func (c ChangeOrderStatusCommand) PhotoKey() string {
	return c.photoKey
}

// DeliveryNotes returns the driver's dropoff note for the delivered transition.
func (c ChangeOrderStatusCommand) DeliveryNotes() string {
	return c.deliveryNotes
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *ChangeOrderStatusCommand) setActor(actorID kernel.UUID, actorRole kernel.Role) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if err := actorRole.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	c.actorRole = actorRole
	return nil
}

func (c *ChangeOrderStatusCommand) setPickupPayload(target order.Status, weightOunces *int, photoKey string) error {
	if target == order.StatusPickedUp && weightOunces == nil {
		return errs.NewValueIsRequiredError("measured weight")
	}

	c.weightOunces = weightOunces
	c.photoKey = photoKey
	return nil
}
