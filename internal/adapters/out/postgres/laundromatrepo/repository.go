package laundromatrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/domain/model/laundromat"
	"washday/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLaundromatRepository implements LaundromatRepository using GORM.
type GormLaundromatRepository struct {
	db *gorm.DB
}

// NewGormLaundromatRepository creates a new GORM laundromat repository.
func NewGormLaundromatRepository(db *gorm.DB) *GormLaundromatRepository {
	return &GormLaundromatRepository{
		db: db,
	}
}

// Add saves a new laundromat to the database.
func (r *GormLaundromatRepository) Add(ctx context.Context, aggregate *laundromat.Laundromat) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing laundromat. Service areas are replaced wholesale
// so removed postal codes disappear from coverage immediately.
func (r *GormLaundromatRepository) Update(ctx context.Context, aggregate *laundromat.Laundromat) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	err := r.db.WithContext(ctx).Model(&LaundromatDTO{}).
		Where("id = ?", dto.ID).
		Select("name", "daily_capacity", "active").
		Updates(&dto).Error
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).
		Where("laundromat_id = ?", dto.ID).
		Delete(&ServiceAreaDTO{}).Error
	if err != nil {
		return err
	}

	if len(dto.ServiceAreas) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&dto.ServiceAreas).Error
}

// Get retrieves a laundromat by its ID.
func (r *GormLaundromatRepository) Get(ctx context.Context, laundromatID kernel.UUID) (*laundromat.Laundromat, error) {
	dto := LaundromatDTO{}

	result := r.db.WithContext(ctx).
		Preload("ServiceAreas").
		Where("id = ?", laundromatID.Bytes()).
		First(&dto)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("laundromatID", laundromatID)
		}
		return nil, result.Error
	}

	return toDomain(dto)
}

// GetAllByPostalCode retrieves every active laundromat covering the postal code.
func (r *GormLaundromatRepository) GetAllByPostalCode(
	ctx context.Context, postalCode kernel.PostalCode,
) ([]*laundromat.Laundromat, error) {
	var dtos []LaundromatDTO

	result := r.db.WithContext(ctx).
		Preload("ServiceAreas").
		Joins("JOIN laundromat_service_areas ON laundromat_service_areas.laundromat_id = laundromats.id").
		Where("laundromat_service_areas.postal_code = ? AND laundromats.active", postalCode.String()).
		Find(&dtos)
	if result.Error != nil {
		return nil, result.Error
	}

	aggregates := make([]*laundromat.Laundromat, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		aggregates = append(aggregates, aggregate)
	}

	return aggregates, nil
}

// ReserveCapacity takes one pickup slot for the laundromat on the given date.
// The day row is created on first use, then the slot is taken with a single
// conditional UPDATE so two concurrent orders can never both get the last one.
func (r *GormLaundromatRepository) ReserveCapacity(
	ctx context.Context, laundromatID kernel.UUID, date time.Time,
) error {
	day := laundromat.DateKey(date)

	ceiling, err := r.dailyCapacity(ctx, laundromatID)
	if err != nil {
		return err
	}

	row := CapacityDayDTO{
		LaundromatID: laundromatID.Bytes(),
		Date:         day,
		Consumed:     0,
		Ceiling:      ceiling,
	}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&CapacityDayDTO{}).
		Where("laundromat_id = ? AND date = ? AND consumed < ceiling", laundromatID.Bytes(), day).
		Update("consumed", gorm.Expr("consumed + 1"))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: laundromat %s on %s", laundromat.ErrCapacityExceeded,
			laundromatID, day.Format("2006-01-02"))
	}

	return nil
}

// ReleaseCapacity gives back one pickup slot. A day that was never reserved
// or already fully released is left untouched.
func (r *GormLaundromatRepository) ReleaseCapacity(
	ctx context.Context, laundromatID kernel.UUID, date time.Time,
) error {
	day := laundromat.DateKey(date)

	return r.db.WithContext(ctx).Model(&CapacityDayDTO{}).
		Where("laundromat_id = ? AND date = ? AND consumed > 0", laundromatID.Bytes(), day).
		Update("consumed", gorm.Expr("consumed - 1")).Error
}

// GetCapacityDay retrieves the ledger entry for a laundromat and date. A date
// with no reservations yet yields a fresh entry at the laundromat's ceiling.
func (r *GormLaundromatRepository) GetCapacityDay(
	ctx context.Context, laundromatID kernel.UUID, date time.Time,
) (*laundromat.CapacityDay, error) {
	day := laundromat.DateKey(date)

	dto := CapacityDayDTO{}
	result := r.db.WithContext(ctx).
		Where("laundromat_id = ? AND date = ?", laundromatID.Bytes(), day).
		First(&dto)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			ceiling, err := r.dailyCapacity(ctx, laundromatID)
			if err != nil {
				return nil, err
			}
			return laundromat.NewCapacityDay(laundromatID, day, ceiling)
		}
		return nil, result.Error
	}

	return capacityDayToDomain(dto)
}

func (r *GormLaundromatRepository) dailyCapacity(ctx context.Context, laundromatID kernel.UUID) (int, error) {
	var ceiling int

	result := r.db.WithContext(ctx).Model(&LaundromatDTO{}).
		Select("daily_capacity").
		Where("id = ?", laundromatID.Bytes()).
		Limit(1).
		Scan(&ceiling)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, errs.NewObjectNotFoundError("laundromatID", laundromatID)
	}

	return ceiling, nil
}
