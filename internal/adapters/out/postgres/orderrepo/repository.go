package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/domain/model/order"
	"washday/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := r.appendHistory(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order, guarded by its version. The row only
// changes when the stored version still matches the one the aggregate was
// loaded with; a concurrent writer that committed first makes this a no-op
// and the caller gets a version error to retry from fresh state.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("order version",
			fmt.Errorf("order %s changed concurrently", aggregate.ID()))
	}

	if err := r.appendHistory(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// appendHistory inserts the aggregate's uncommitted transition entries and
// clears them once staged in the transaction.
func (r *GormOrderRepository) appendHistory(ctx context.Context, aggregate *order.Order) error {
	entries := aggregate.UncommittedHistory()
	if len(entries) == 0 {
		return nil
	}

	dtos := make([]HistoryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, historyFromDomain(aggregate.ID(), entry))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return err
	}

	aggregate.MarkHistoryPersisted()
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByAccessToken retrieves an order by its guest tracking token.
func (r *GormOrderRepository) GetByAccessToken(ctx context.Context, token string) (*order.Order, error) {
	if token == "" {
		return nil, errs.NewValueIsRequiredError("access token")
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "access_token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("access token", token)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves orders outside the terminal statuses.
func (r *GormOrderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status NOT IN ?", []int{
			int(order.StatusDelivered), int(order.StatusCancelled), int(order.StatusArchived),
		}).
		Order("pickup_date, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllDeliveredBefore retrieves delivered orders older than the cutoff.
func (r *GormOrderRepository) GetAllDeliveredBefore(
	ctx context.Context, cutoff time.Time,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND delivered_at < ?", int(order.StatusDelivered), cutoff).
		Order("delivered_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
