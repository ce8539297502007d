package commands

import (
	"errors"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a request to call an order off.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actorID   kernel.UUID
	actorRole kernel.Role

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order.
func NewCancelOrderCommand(orderID, actorID kernel.UUID, actorRole kernel.Role) (CancelOrderCommand, error) {
	cancelCommand := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cancelCommand.setOrderID(orderID),
		cancelCommand.setActor(actorID, actorRole),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return cancelCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being cancelled.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns who requested the cancellation.
func (c CancelOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the requesting actor's role.
func (c CancelOrderCommand) ActorRole() kernel.Role {
	return c.actorRole
}

func (c *CancelOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setActor(actorID kernel.UUID, actorRole kernel.Role) error {
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
