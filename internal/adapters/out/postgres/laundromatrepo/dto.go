package laundromatrepo

import (
	"time"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/domain/model/laundromat"

	"github.com/google/uuid"
)

// LaundromatDTO is a data transfer object for the Laundromat aggregate in the database.
type LaundromatDTO struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Name          string           `gorm:"type:varchar(255);not null"`
	DailyCapacity int              `gorm:"not null"`
	Active        bool             `gorm:"not null"`
	ServiceAreas  []ServiceAreaDTO `gorm:"foreignKey:LaundromatID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name for GORM.
func (LaundromatDTO) TableName() string {
	return "laundromats"
}

// ServiceAreaDTO is a data transfer object for a covered postal code.
type ServiceAreaDTO struct {
	LaundromatID uuid.UUID `gorm:"type:uuid;primaryKey"`
	PostalCode   string    `gorm:"type:varchar(16);primaryKey;index"`
}

// TableName overrides the table name for GORM.
func (ServiceAreaDTO) TableName() string {
	return "laundromat_service_areas"
}

// CapacityDayDTO is a data transfer object for one day of the capacity ledger.
type CapacityDayDTO struct {
	LaundromatID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Date         time.Time `gorm:"primaryKey"`
	Consumed     int       `gorm:"not null"`
	Ceiling      int       `gorm:"not null"`
}

// TableName overrides the table name for GORM.
func (CapacityDayDTO) TableName() string {
	return "capacity_days"
}

func fromDomain(aggregate *laundromat.Laundromat) LaundromatDTO {
	areas := make([]ServiceAreaDTO, 0, len(aggregate.ServiceAreas()))
	for _, area := range aggregate.ServiceAreas() {
		areas = append(areas, ServiceAreaDTO{
			LaundromatID: aggregate.ID().Bytes(),
			PostalCode:   area.String(),
		})
	}

	return LaundromatDTO{
		ID:            aggregate.ID().Bytes(),
		Name:          aggregate.Name(),
		DailyCapacity: aggregate.DailyCapacity(),
		Active:        aggregate.IsActive(),
		ServiceAreas:  areas,
	}
}

func toDomain(dto LaundromatDTO) (*laundromat.Laundromat, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	areas := make([]kernel.PostalCode, 0, len(dto.ServiceAreas))
	for _, area := range dto.ServiceAreas {
		postalCode, err := kernel.NewPostalCode(area.PostalCode)
		if err != nil {
			return nil, err
		}
		areas = append(areas, postalCode)
	}

	return laundromat.RestoreLaundromat(id, dto.Name, areas, dto.DailyCapacity, dto.Active)
}

func capacityDayToDomain(dto CapacityDayDTO) (*laundromat.CapacityDay, error) {
	laundromatID, err := kernel.UUIDFromBytes(dto.LaundromatID[:])
	if err != nil {
		return nil, err
	}

	return laundromat.RestoreCapacityDay(laundromatID, dto.Date, dto.Consumed, dto.Ceiling)
}
