package commands

import (
	"errors"

	"washday/internal/pkg/guard"
)

var (
	ErrDispatchNotificationsCommandIsNotConstructed = errors.New(
		"DispatchNotificationsCommand must be created via NewDispatchNotificationsCommand constructor",
	)
	ErrLimitIsInvalid = errors.New("limit must be greater than 0")
)

// DispatchNotificationsCommand represents a retry sweep over the notification
// outbox. Issued periodically by the dispatch job.
type DispatchNotificationsCommand struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

// NewDispatchNotificationsCommand creates a command to deliver up to limit
// pending notifications.
func NewDispatchNotificationsCommand(limit int) (DispatchNotificationsCommand, error) {
	dispatchCommand := DispatchNotificationsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := dispatchCommand.setLimit(limit); err != nil {
		return DispatchNotificationsCommand{}, err
	}

	return dispatchCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchNotificationsCommandIsNotConstructed)
}

// Limit returns the batch size of the sweep.
func (c DispatchNotificationsCommand) Limit() int {
	return c.limit
}

func (c *DispatchNotificationsCommand) setLimit(limit int) error {
	if limit <= 0 {
		return ErrLimitIsInvalid
	}

	c.limit = limit
	return nil
}
