package sessionrepo

import (
	"context"
	"errors"

	"washday/internal/core/domain/model/session"
	"washday/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSessionRepository implements SessionRepository using GORM.
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new GORM session repository.
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{
		db: db,
	}
}

// Add persists a newly issued session.
func (r *GormSessionRepository) Add(ctx context.Context, aggregate *session.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByToken retrieves a session by its bearer token.
func (r *GormSessionRepository) GetByToken(ctx context.Context, token string) (*session.Session, error) {
	dto := SessionDTO{}

	result := r.db.WithContext(ctx).Where("token = ?", token).First(&dto)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("session token", token)
		}
		return nil, result.Error
	}

	return toDomain(dto)
}

// Delete removes a session, logging the actor out.
func (r *GormSessionRepository) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&SessionDTO{}).Error
}
