package commands

import (
	"context"
	"time"

	"washday/internal/core/domain/model/kernel"
)

// ArchiveOrdersCommandHandler archives delivered orders past their retention
// window. Each archive is an ordinary transition, so the audit history shows
// when and by which system actor the order left the active set.
type ArchiveOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewArchiveOrdersCommandHandler creates a handler for the retention sweep.
func NewArchiveOrdersCommandHandler(uowFactory OrderUoWFactory) ArchiveOrdersCommandHandler {
	return ArchiveOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle archives every delivered order older than the cutoff in one
// transaction. Returns the number of orders archived.
func (h ArchiveOrdersCommandHandler) Handle(ctx context.Context, cmd ArchiveOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	delivered, err := orderRepo.GetAllDeliveredBefore(ctx, cmd.Cutoff())
	if err != nil {
		return 0, err
	}

	for _, aggregate := range delivered {
		if err = aggregate.Archive(kernel.RoleAdmin, cmd.ActorID(), now); err != nil {
			return 0, err
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(delivered), nil
}
