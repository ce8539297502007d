package notificationrepo

import (
	"time"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO is a data transfer object for an outbox entry in the database.
type NotificationDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID  `gorm:"type:uuid;index"`
	Kind      string     `gorm:"type:varchar(32);not null"`
	Message   string     `gorm:"type:text;not null"`
	Status    string     `gorm:"type:varchar(16);not null;index"`
	Attempts  int        `gorm:"not null"`
	CreatedAt time.Time  `gorm:"not null"`
	SentAt    *time.Time `gorm:""`
}

// TableName overrides the table name for GORM.
func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(aggregate *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        aggregate.ID().Bytes(),
		OrderID:   aggregate.OrderID().Bytes(),
		Kind:      aggregate.Kind().String(),
		Message:   aggregate.Message(),
		Status:    aggregate.Status(),
		Attempts:  aggregate.Attempts(),
		CreatedAt: aggregate.CreatedAt(),
		SentAt:    aggregate.SentAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	kind, err := notification.KindFromString(dto.Kind)
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(
		id, orderID, kind, dto.Message, dto.Status, dto.Attempts, dto.CreatedAt, dto.SentAt)
}
