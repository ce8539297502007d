package commands_test

import (
	"context"
	"errors"
	"testing"

	"washday/internal/core/application/usecases/commands"
	"washday/internal/core/domain/model/customer"
	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/domain/model/laundromat"
	"washday/internal/core/domain/model/order"
	"washday/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateHandler(
	factory *MockCreateOrderUoWFactory,
	notifFactory *MockNotificationUoWFactory,
	notifier *MockNotifier,
	t *testing.T,
) commands.CreateOrderCommandHandler {
	t.Helper()
	return commands.NewCreateOrderCommandHandler(factory, notifFactory, notifier, mustMoney(t, 3500))
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	cmd := validCreateOrderCommand(t)
	pickupDate := laundromat.DateKey(cmd.PickupDate())

	existing, err := customer.NewCustomer(
		kernel.NewUUID(), "Ada Smith", "ada@example.com", "+14155550101", false)
	require.NoError(t, err)

	chosen := mustLaundromat(t, "Mission Suds", "94110", 10)

	orderRepo := new(MockOrderRepository)
	laundromatRepo := new(MockLaundromatRepository)
	customerRepo := new(MockCustomerRepository)
	notificationRepo := new(MockNotificationRepository)
	notifier := new(MockNotifier)
	uow := new(MockUoW)
	uow2 := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("GetByEmail", ctx, "ada@example.com").Return(existing, nil).Once(),
		uow.On("LaundromatRepository").Return(laundromatRepo).Once(),
		laundromatRepo.On("GetAllByPostalCode", ctx, mustPostalCode(t, "94110")).
			Return([]*laundromat.Laundromat{chosen}, nil).Once(),
		laundromatRepo.On("GetCapacityDay", ctx, chosen.ID(), pickupDate).
			Return(mustCapacityDay(t, chosen, pickupDate, 2), nil).Once(),
		laundromatRepo.On("ReserveCapacity", ctx, chosen.ID(), pickupDate).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("NotificationRepository").Return(notificationRepo).Once(),
		notificationRepo.On("Add", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("Send", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once(),
		uow2.On("Begin", ctx).Return(nil).Once(),
		uow2.On("NotificationRepository").Return(notificationRepo).Once(),
		notificationRepo.On("Update", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once(),
		uow2.On("Commit", ctx).Return(nil).Once(),
		uow2.On("Rollback", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	notifFactory := new(MockNotificationUoWFactory)
	notifFactory.On("Create").Return(uow2).Once()

	handler := newCreateHandler(factory, notifFactory, notifier, t)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)

	created := orderRepo.Calls[0].Arguments[1].(*order.Order)
	assert.Equal(t, order.StatusScheduled, created.Status())
	assert.True(t, created.CustomerID().IsEqual(existing.ID()))
	require.NotNil(t, created.Laundromat())
	assert.True(t, created.Laundromat().IsEqual(chosen.ID()))
	// 20 lb wash & fold at 225 cents clears the 3500 floor, so the total
	// equals the subtotal.
	assert.Equal(t, int64(4500), created.Subtotal().Cents())
	assert.Equal(t, int64(4500), created.Total().Cents())
	assert.NotEmpty(t, created.AccessToken().Value())

	assert.True(t, result.OrderID.IsEqual(created.ID()))
	assert.Equal(t, created.AccessToken().Value(), result.AccessToken)
	assert.Equal(t, int64(4500), result.Total.Cents())

	orderRepo.AssertExpectations(t)
	laundromatRepo.AssertExpectations(t)
	customerRepo.AssertExpectations(t)
	notificationRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
	uow.AssertExpectations(t)
	uow2.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_CreatesGuestCustomer(t *testing.T) {
	ctx := context.Background()
	cmd := validCreateOrderCommand(t)
	pickupDate := laundromat.DateKey(cmd.PickupDate())
	chosen := mustLaundromat(t, "Mission Suds", "94110", 10)

	orderRepo := new(MockOrderRepository)
	laundromatRepo := new(MockLaundromatRepository)
	customerRepo := new(MockCustomerRepository)
	notificationRepo := new(MockNotificationRepository)
	notifier := new(MockNotifier)
	uow := new(MockUoW)
	uow2 := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("GetByEmail", ctx, "ada@example.com").
			Return(nil, errs.NewObjectNotFoundError("email", "ada@example.com")).Once(),
		customerRepo.On("Add", ctx, mock.AnythingOfType("*customer.Customer")).Return(nil).Once(),
		uow.On("LaundromatRepository").Return(laundromatRepo).Once(),
		laundromatRepo.On("GetAllByPostalCode", ctx, mustPostalCode(t, "94110")).
			Return([]*laundromat.Laundromat{chosen}, nil).Once(),
		laundromatRepo.On("GetCapacityDay", ctx, chosen.ID(), pickupDate).
			Return(mustCapacityDay(t, chosen, pickupDate, 0), nil).Once(),
		laundromatRepo.On("ReserveCapacity", ctx, chosen.ID(), pickupDate).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("NotificationRepository").Return(notificationRepo).Once(),
		notificationRepo.On("Add", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("Send", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once(),
		uow2.On("Begin", ctx).Return(nil).Once(),
		uow2.On("NotificationRepository").Return(notificationRepo).Once(),
		notificationRepo.On("Update", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once(),
		uow2.On("Commit", ctx).Return(nil).Once(),
		uow2.On("Rollback", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	notifFactory := new(MockNotificationUoWFactory)
	notifFactory.On("Create").Return(uow2).Once()

	handler := newCreateHandler(factory, notifFactory, notifier, t)
	_, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)

	guest := customerRepo.Calls[1].Arguments[1].(*customer.Customer)
	assert.True(t, guest.IsGuest())
	assert.Equal(t, "ada@example.com", guest.Email())
	customerRepo.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_FallsThroughOnCapacityRace(t *testing.T) {
	ctx := context.Background()
	cmd := validCreateOrderCommand(t)
	pickupDate := laundromat.DateKey(cmd.PickupDate())

	busy := mustLaundromat(t, "Mission Suds", "94110", 10)
	spare := mustLaundromat(t, "Valencia Wash", "94110", 10)

	existing, err := customer.NewCustomer(
		kernel.NewUUID(), "Ada Smith", "ada@example.com", "", false)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	laundromatRepo := new(MockLaundromatRepository)
	customerRepo := new(MockCustomerRepository)
	notificationRepo := new(MockNotificationRepository)
	notifier := new(MockNotifier)
	uow := new(MockUoW)
	uow2 := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CustomerRepository").Return(customerRepo).Once()
	customerRepo.On("GetByEmail", ctx, "ada@example.com").Return(existing, nil).Once()
	uow.On("LaundromatRepository").Return(laundromatRepo).Once()
	laundromatRepo.On("GetAllByPostalCode", ctx, mustPostalCode(t, "94110")).
		Return([]*laundromat.Laundromat{busy, spare}, nil).Once()
	// busy looks like it has the last slot free but loses the race with a
	// concurrent order; spare takes it instead.
	laundromatRepo.On("GetCapacityDay", ctx, busy.ID(), pickupDate).
		Return(mustCapacityDay(t, busy, pickupDate, 1), nil).Once()
	laundromatRepo.On("GetCapacityDay", ctx, spare.ID(), pickupDate).
		Return(mustCapacityDay(t, spare, pickupDate, 5), nil).Once()
	laundromatRepo.On("ReserveCapacity", ctx, busy.ID(), pickupDate).
		Return(laundromat.ErrCapacityExceeded).Once()
	laundromatRepo.On("ReserveCapacity", ctx, spare.ID(), pickupDate).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("NotificationRepository").Return(notificationRepo).Once()
	notificationRepo.On("Add", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	notifier.On("Send", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once()
	uow2.On("Begin", ctx).Return(nil).Once()
	uow2.On("NotificationRepository").Return(notificationRepo).Once()
	notificationRepo.On("Update", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once()
	uow2.On("Commit", ctx).Return(nil).Once()
	uow2.On("Rollback", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockCreateOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	notifFactory := new(MockNotificationUoWFactory)
	notifFactory.On("Create").Return(uow2).Once()

	handler := newCreateHandler(factory, notifFactory, notifier, t)
	_, err = handler.Handle(ctx, cmd)

	require.NoError(t, err)

	created := orderRepo.Calls[0].Arguments[1].(*order.Order)
	require.NotNil(t, created.Laundromat())
	assert.True(t, created.Laundromat().IsEqual(spare.ID()))
	laundromatRepo.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_NoCapacityAnywhere(t *testing.T) {
	ctx := context.Background()
	cmd := validCreateOrderCommand(t)
	pickupDate := laundromat.DateKey(cmd.PickupDate())
	full := mustLaundromat(t, "Mission Suds", "94110", 10)

	existing, err := customer.NewCustomer(
		kernel.NewUUID(), "Ada Smith", "ada@example.com", "", false)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	laundromatRepo := new(MockLaundromatRepository)
	customerRepo := new(MockCustomerRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("GetByEmail", ctx, "ada@example.com").Return(existing, nil).Once(),
		uow.On("LaundromatRepository").Return(laundromatRepo).Once(),
		laundromatRepo.On("GetAllByPostalCode", ctx, mustPostalCode(t, "94110")).
			Return([]*laundromat.Laundromat{full}, nil).Once(),
		laundromatRepo.On("GetCapacityDay", ctx, full.ID(), pickupDate).
			Return(mustCapacityDay(t, full, pickupDate, 10), nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	notifFactory := new(MockNotificationUoWFactory)
	notifier := new(MockNotifier)

	handler := newCreateHandler(factory, notifFactory, notifier, t)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNoLaundromatAvailable)
	orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_NoCoverage(t *testing.T) {
	ctx := context.Background()
	cmd := validCreateOrderCommand(t)

	existing, err := customer.NewCustomer(
		kernel.NewUUID(), "Ada Smith", "ada@example.com", "", false)
	require.NoError(t, err)

	laundromatRepo := new(MockLaundromatRepository)
	customerRepo := new(MockCustomerRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("GetByEmail", ctx, "ada@example.com").Return(existing, nil).Once(),
		uow.On("LaundromatRepository").Return(laundromatRepo).Once(),
		laundromatRepo.On("GetAllByPostalCode", ctx, mustPostalCode(t, "94110")).
			Return([]*laundromat.Laundromat{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newCreateHandler(factory, new(MockNotificationUoWFactory), new(MockNotifier), t)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNoLaundromatAvailable)
}

func TestCreateOrderCommandHandler_Handle_NotifierFailureDoesNotFailOrder(t *testing.T) {
	ctx := context.Background()
	cmd := validCreateOrderCommand(t)
	pickupDate := laundromat.DateKey(cmd.PickupDate())
	chosen := mustLaundromat(t, "Mission Suds", "94110", 10)

	existing, err := customer.NewCustomer(
		kernel.NewUUID(), "Ada Smith", "ada@example.com", "", false)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	laundromatRepo := new(MockLaundromatRepository)
	customerRepo := new(MockCustomerRepository)
	notificationRepo := new(MockNotificationRepository)
	notifier := new(MockNotifier)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("GetByEmail", ctx, "ada@example.com").Return(existing, nil).Once(),
		uow.On("LaundromatRepository").Return(laundromatRepo).Once(),
		laundromatRepo.On("GetAllByPostalCode", ctx, mustPostalCode(t, "94110")).
			Return([]*laundromat.Laundromat{chosen}, nil).Once(),
		laundromatRepo.On("GetCapacityDay", ctx, chosen.ID(), pickupDate).
			Return(mustCapacityDay(t, chosen, pickupDate, 0), nil).Once(),
		laundromatRepo.On("ReserveCapacity", ctx, chosen.ID(), pickupDate).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("NotificationRepository").Return(notificationRepo).Once(),
		notificationRepo.On("Add", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("Send", ctx, mock.AnythingOfType("*notification.Notification")).
			Return(errors.New("broker unavailable")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	notifFactory := new(MockNotificationUoWFactory)

	handler := newCreateHandler(factory, notifFactory, notifier, t)
	_, err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	// The notification stays pending; no bookkeeping transaction is opened.
	notifFactory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := context.Background()
	factory := new(MockCreateOrderUoWFactory)

	handler := newCreateHandler(factory, new(MockNotificationUoWFactory), new(MockNotifier), t)
	_, err := handler.Handle(ctx, commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
