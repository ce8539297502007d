package notificationrepo

import (
	"context"

	"washday/internal/core/domain/model/notification"

	"gorm.io/gorm"
)

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GORM notification repository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{
		db: db,
	}
}

// Add enqueues a pending notification.
func (r *GormNotificationRepository) Add(ctx context.Context, aggregate *notification.Notification) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update persists delivery bookkeeping after a send attempt.
func (r *GormNotificationRepository) Update(ctx context.Context, aggregate *notification.Notification) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id").
		Updates(&dto).Error
}

// GetAllPending retrieves pending notifications oldest first, capped at limit.
func (r *GormNotificationRepository) GetAllPending(
	ctx context.Context, limit int,
) ([]*notification.Notification, error) {
	var dtos []NotificationDTO

	result := r.db.WithContext(ctx).
		Where("status = ?", notification.StatusPending).
		Order("created_at, id").
		Limit(limit).
		Find(&dtos)
	if result.Error != nil {
		return nil, result.Error
	}

	aggregates := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		aggregates = append(aggregates, aggregate)
	}

	return aggregates, nil
}
