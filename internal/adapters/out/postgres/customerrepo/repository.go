package customerrepo

import (
	"context"
	"errors"
	"strings"

	"washday/internal/core/domain/model/customer"
	"washday/internal/core/domain/model/kernel"
	"washday/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM.
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GORM customer repository.
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{
		db: db,
	}
}

// Add saves a new customer to the database.
func (r *GormCustomerRepository) Add(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing customer to the database.
func (r *GormCustomerRepository) Update(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).
		Model(&CustomerDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id").
		Updates(&dto).Error
}

// Get retrieves a customer by its ID.
func (r *GormCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	dto := CustomerDTO{}

	result := r.db.WithContext(ctx).Where("id = ?", id.Bytes()).First(&dto)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customerID", id)
		}
		return nil, result.Error
	}

	return toDomain(dto)
}

// GetByEmail retrieves a customer by email. Stored emails are lowercased, so
// the lookup folds its argument the same way.
func (r *GormCustomerRepository) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	dto := CustomerDTO{}

	result := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&dto)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("email", email)
		}
		return nil, result.Error
	}

	return toDomain(dto)
}
