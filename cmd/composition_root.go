package cmd

import (
	"fmt"
	"log/slog"
	"time"

	washhttp "washday/internal/adapters/in/http"
	"washday/internal/adapters/out/postgres"
	"washday/internal/adapters/out/postgres/sessionrepo"
	"washday/internal/core/application/usecases/commands"
	"washday/internal/core/application/usecases/queries"
	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/ports"
	"washday/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs       Config
	gormDB        *gorm.DB
	uowFactory    postgres.GormUnitOfWorkFactory
	notifier      ports.Notifier
	paymentClient ports.PaymentClient
	photoStore    ports.PhotoStore
	minimumCharge kernel.Money
	systemActorID kernel.UUID
}

func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	notifier ports.Notifier,
	paymentClient ports.PaymentClient,
	photoStore ports.PhotoStore,
) (CompositionRoot, error) {
	minimumCharge, err := kernel.NewMoneyFromCents(configs.MinimumChargeCents)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("invalid minimum charge: %w", err)
	}
	systemActorID, err := kernel.UUIDFromString(configs.SystemActorID)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("invalid system actor id: %w", err)
	}

	return CompositionRoot{
		configs:       configs,
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:      notifier,
		paymentClient: paymentClient,
		photoStore:    photoStore,
		minimumCharge: minimumCharge,
		systemActorID: systemActorID,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.CreateOrderUoWFactory = FuncCreateOrderUoWFactory(func() commands.CreateOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(
		f, c.createNotificationUoWFactory(), c.notifier, c.minimumCharge)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(
		f, c.createNotificationUoWFactory(), c.notifier, c.paymentClient)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.CancelOrderUoWFactory = FuncCancelOrderUoWFactory(func() commands.CancelOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.createNotificationUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateDispatchNotificationsCommandHandler() commands.DispatchNotificationsCommandHandler {
	return commands.NewDispatchNotificationsCommandHandler(c.createNotificationUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateArchiveOrdersCommandHandler() commands.ArchiveOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewArchiveOrdersCommandHandler(f)
}

func (c *CompositionRoot) CreateTrackOrderQueryHandler() queries.TrackOrderQueryHandler {
	return queries.NewTrackOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCapacityQueryHandler() queries.GetCapacityQueryHandler {
	return queries.NewGetCapacityQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *washhttp.Server {
	return washhttp.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateChangeOrderStatusCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateTrackOrderQueryHandler(),
		c.CreateGetCapacityQueryHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
		c.photoStore,
		c.configs.PublicBaseURL,
	)
}

func (c *CompositionRoot) CreateAuthMiddleware() *washhttp.AuthMiddleware {
	return washhttp.NewAuthMiddleware(sessionrepo.NewGormSessionRepository(c.gormDB))
}

func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	retention := time.Duration(c.configs.ArchiveRetentionDays) * 24 * time.Hour
	return jobs.NewJobManager(
		c.CreateDispatchNotificationsCommandHandler(),
		c.CreateArchiveOrdersCommandHandler(),
		c.systemActorID,
		retention,
		logger,
	)
}

func (c *CompositionRoot) createNotificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

type FuncCreateOrderUoWFactory func() commands.CreateOrderUoW

func (f FuncCreateOrderUoWFactory) Create() commands.CreateOrderUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCancelOrderUoWFactory func() commands.CancelOrderUoW

func (f FuncCancelOrderUoWFactory) Create() commands.CancelOrderUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
