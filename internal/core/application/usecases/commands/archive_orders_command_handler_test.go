package commands_test

import (
	"context"
	"testing"
	"time"

	"washday/internal/core/application/usecases/commands"
	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestArchiveOrdersCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()
	systemActor := kernel.NewUUID()
	cutoff := time.Now().UTC().AddDate(0, 0, -90)

	t.Run("should archive every delivered order past the cutoff", func(t *testing.T) {
		first := orderInStatus(t, order.StatusDelivered)
		second := orderInStatus(t, order.StatusDelivered)

		cmd, err := commands.NewArchiveOrdersCommand(systemActor, cutoff)
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		uow := new(MockUoW)

		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("GetAllDeliveredBefore", ctx, cutoff).
				Return([]*order.Order{first, second}, nil).Once(),
			orderRepo.On("Update", ctx, first).Return(nil).Once(),
			orderRepo.On("Update", ctx, second).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler := commands.NewArchiveOrdersCommandHandler(factory)
		archived, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 2, archived)
		assert.Equal(t, order.StatusArchived, first.Status())
		assert.Equal(t, order.StatusArchived, second.Status())
		orderRepo.AssertExpectations(t)
	})

	t.Run("should do nothing when no orders match", func(t *testing.T) {
		cmd, err := commands.NewArchiveOrdersCommand(systemActor, cutoff)
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		uow := new(MockUoW)

		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("GetAllDeliveredBefore", ctx, cutoff).
				Return([]*order.Order{}, nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler := commands.NewArchiveOrdersCommandHandler(factory)
		archived, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 0, archived)
	})

	t.Run("should reject zero cutoff", func(t *testing.T) {
		_, err := commands.NewArchiveOrdersCommand(systemActor, time.Time{})

		require.ErrorIs(t, err, commands.ErrCutoffIsRequired)
	})
}
