package commands

import (
	"errors"
	"time"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/pkg/guard"
)

var (
	ErrArchiveOrdersCommandIsNotConstructed = errors.New(
		"ArchiveOrdersCommand must be created via NewArchiveOrdersCommand constructor",
	)
	ErrCutoffIsRequired = errors.New("cutoff is required")
)

// ArchiveOrdersCommand represents a housekeeping request to archive delivered
// orders older than the cutoff. Issued by the retention job on behalf of a
// system actor.
type ArchiveOrdersCommand struct { //nolint:recvcheck //using for validation
	actorID kernel.UUID
	cutoff  time.Time

	guard guard.ConstructorGuard
}

// NewArchiveOrdersCommand creates a command to archive old delivered orders.
func NewArchiveOrdersCommand(actorID kernel.UUID, cutoff time.Time) (ArchiveOrdersCommand, error) {
	archiveCommand := ArchiveOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		archiveCommand.setActorID(actorID),
		archiveCommand.setCutoff(cutoff),
	); err != nil {
		return ArchiveOrdersCommand{}, err
	}

	return archiveCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ArchiveOrdersCommand) Validate() error {
	return c.guard.Validate(ErrArchiveOrdersCommandIsNotConstructed)
}

// ActorID returns the system actor recorded in each archive history entry.
func (c ArchiveOrdersCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Cutoff returns the delivery time before which orders get archived.
func (c ArchiveOrdersCommand) Cutoff() time.Time {
	return c.cutoff
}

func (c *ArchiveOrdersCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *ArchiveOrdersCommand) setCutoff(cutoff time.Time) error {
	if cutoff.IsZero() {
		return ErrCutoffIsRequired
	}

	c.cutoff = cutoff
	return nil
}
