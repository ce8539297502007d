package customerrepo

import (
	"washday/internal/core/domain/model/customer"
	"washday/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CustomerDTO is a data transfer object for the Customer aggregate in the database.
type CustomerDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"type:varchar(255);not null"`
	Email string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone string    `gorm:"type:varchar(32)"`
	Guest bool      `gorm:"not null"`
}

// TableName overrides the table name for GORM.
func (CustomerDTO) TableName() string {
	return "customers"
}

func fromDomain(aggregate *customer.Customer) CustomerDTO {
	return CustomerDTO{
		ID:    aggregate.ID().Bytes(),
		Name:  aggregate.Name(),
		Email: aggregate.Email(),
		Phone: aggregate.Phone(),
		Guest: aggregate.IsGuest(),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return customer.RestoreCustomer(id, dto.Name, dto.Email, dto.Phone, dto.Guest)
}
