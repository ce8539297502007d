package commands_test

import (
	"context"
	"io"
	"testing"
	"time"

	"washday/internal/core/application/usecases/commands"
	"washday/internal/core/domain/model/customer"
	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/domain/model/laundromat"
	"washday/internal/core/domain/model/notification"
	"washday/internal/core/domain/model/order"
	"washday/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByAccessToken(ctx context.Context, token string) (*order.Order, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllDeliveredBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockLaundromatRepository struct{ mock.Mock }

func (m *MockLaundromatRepository) Add(ctx context.Context, aggregate *laundromat.Laundromat) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockLaundromatRepository) Update(ctx context.Context, aggregate *laundromat.Laundromat) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockLaundromatRepository) Get(ctx context.Context, id kernel.UUID) (*laundromat.Laundromat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*laundromat.Laundromat), args.Error(1)
}

func (m *MockLaundromatRepository) GetAllByPostalCode(
	ctx context.Context, postalCode kernel.PostalCode,
) ([]*laundromat.Laundromat, error) {
	args := m.Called(ctx, postalCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*laundromat.Laundromat), args.Error(1)
}

func (m *MockLaundromatRepository) ReserveCapacity(
	ctx context.Context, laundromatID kernel.UUID, date time.Time,
) error {
	args := m.Called(ctx, laundromatID, date)
	return args.Error(0)
}

func (m *MockLaundromatRepository) ReleaseCapacity(
	ctx context.Context, laundromatID kernel.UUID, date time.Time,
) error {
	args := m.Called(ctx, laundromatID, date)
	return args.Error(0)
}

func (m *MockLaundromatRepository) GetCapacityDay(
	ctx context.Context, laundromatID kernel.UUID, date time.Time,
) (*laundromat.CapacityDay, error) {
	args := m.Called(ctx, laundromatID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*laundromat.CapacityDay), args.Error(1)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Add(ctx context.Context, aggregate *customer.Customer) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, aggregate *customer.Customer) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, aggregate *notification.Notification) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockNotificationRepository) Update(ctx context.Context, aggregate *notification.Notification) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetAllPending(
	ctx context.Context, limit int,
) ([]*notification.Notification, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Send(ctx context.Context, aggregate *notification.Notification) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

type MockPaymentClient struct{ mock.Mock }

func (m *MockPaymentClient) Capture(ctx context.Context, orderID kernel.UUID, amount kernel.Money) error {
	args := m.Called(ctx, orderID, amount)
	return args.Error(0)
}

type MockPhotoStore struct{ mock.Mock }

func (m *MockPhotoStore) Upload(
	ctx context.Context, orderID string, contentType string, body io.Reader,
) (string, error) {
	args := m.Called(ctx, orderID, contentType, body)
	return args.String(0), args.Error(1)
}

func (m *MockPhotoStore) PresignedURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

// MockUoW satisfies every unit of work interface in the package, the way the
// concrete gorm unit of work does behind the composition root adapters.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) LaundromatRepository() ports.LaundromatRepository {
	args := m.Called()
	return args.Get(0).(ports.LaundromatRepository)
}

func (m *MockUoW) CustomerRepository() ports.CustomerRepository {
	args := m.Called()
	return args.Get(0).(ports.CustomerRepository)
}

func (m *MockUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

type MockCreateOrderUoWFactory struct{ mock.Mock }

func (m *MockCreateOrderUoWFactory) Create() commands.CreateOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.CreateOrderUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCancelOrderUoWFactory struct{ mock.Mock }

func (m *MockCancelOrderUoWFactory) Create() commands.CancelOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.CancelOrderUoW)
}

type MockNotificationUoWFactory struct{ mock.Mock }

func (m *MockNotificationUoWFactory) Create() commands.NotificationUoW {
	args := m.Called()
	return args.Get(0).(commands.NotificationUoW)
}

func mustPostalCode(t *testing.T, code string) kernel.PostalCode {
	t.Helper()
	postalCode, err := kernel.NewPostalCode(code)
	require.NoError(t, err)
	return postalCode
}

func mustAddress(t *testing.T, line1, city, code string) order.Address {
	t.Helper()
	address, err := order.NewAddress(line1, "", city, mustPostalCode(t, code))
	require.NoError(t, err)
	return address
}

func mustMoney(t *testing.T, cents int64) kernel.Money {
	t.Helper()
	money, err := kernel.NewMoneyFromCents(cents)
	require.NoError(t, err)
	return money
}

func mustLaundromat(t *testing.T, name string, code string, capacity int) *laundromat.Laundromat {
	t.Helper()
	l, err := laundromat.NewLaundromat(
		kernel.NewUUID(), name, []kernel.PostalCode{mustPostalCode(t, code)}, capacity)
	require.NoError(t, err)
	return l
}

func mustCapacityDay(t *testing.T, l *laundromat.Laundromat, date time.Time, consumed int) *laundromat.CapacityDay {
	t.Helper()
	day, err := laundromat.RestoreCapacityDay(l.ID(), date, consumed, l.DailyCapacity())
	require.NoError(t, err)
	return day
}

func newScheduledOrder(t *testing.T) *order.Order {
	t.Helper()
	token, err := kernel.NewAccessToken(time.Now().UTC())
	require.NoError(t, err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(),
		mustAddress(t, "600 Guerrero St", "San Francisco", "94110"),
		mustAddress(t, "600 Guerrero St", "San Francisco", "94110"),
		order.ServiceWashFold, 20,
		time.Now().UTC().AddDate(0, 0, 1), order.WindowMorning,
		mustMoney(t, 4500), mustMoney(t, 4500), token,
	)
	require.NoError(t, err)
	return aggregate
}

// orderInStatus walks a fresh order to the wanted status through the domain
// transitions, so tests exercise realistic aggregates.
func orderInStatus(t *testing.T, target order.Status) *order.Order {
	t.Helper()
	aggregate := newScheduledOrder(t)
	admin := kernel.NewUUID()
	now := time.Now().UTC()

	steps := []order.Status{
		order.StatusEnRoutePickup,
		order.StatusPickedUp,
		order.StatusProcessing,
		order.StatusReadyForDelivery,
		order.StatusEnRouteDelivery,
		order.StatusDelivered,
	}
	for _, step := range steps {
		if aggregate.Status() == target {
			break
		}
		if step == order.StatusPickedUp {
			require.NoError(t, aggregate.RecordPickup(320, "photos/test.jpg", kernel.RoleAdmin, admin, now))
		} else {
			require.NoError(t, aggregate.ChangeStatus(step, kernel.RoleAdmin, admin, now))
		}
	}
	require.Equal(t, target, aggregate.Status())
	aggregate.MarkHistoryPersisted()
	return aggregate
}
