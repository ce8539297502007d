package ports

import (
	"context"
	"time"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/domain/model/laundromat"
)

// LaundromatRepository defines the persistence contract for laundromats and
// their per-day capacity ledger.
type LaundromatRepository interface {
	// Add persists a new laundromat with its service area.
	Add(ctx context.Context, aggregate *laundromat.Laundromat) error

	// Update persists changes to an existing laundromat.
	Update(ctx context.Context, aggregate *laundromat.Laundromat) error

	// Get retrieves a laundromat by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*laundromat.Laundromat, error)

	// GetAllByPostalCode retrieves every active laundromat whose service
	// area contains the postal code.
	GetAllByPostalCode(ctx context.Context, postalCode kernel.PostalCode) ([]*laundromat.Laundromat, error)

	// ReserveCapacity takes one pickup slot for the laundromat on the
	// given date. The reservation is a single conditional update, so two
	// concurrent orders can never both take the last slot. Returns an
	// error wrapping laundromat.ErrCapacityExceeded when the day is full.
	ReserveCapacity(ctx context.Context, laundromatID kernel.UUID, date time.Time) error

	// ReleaseCapacity gives back one pickup slot, when an order is
	// cancelled before pickup. Never drops consumption below zero.
	ReleaseCapacity(ctx context.Context, laundromatID kernel.UUID, date time.Time) error

	// GetCapacityDay retrieves the ledger entry for a laundromat and
	// date. A date with no reservations yet returns a fresh entry with
	// zero consumption.
	GetCapacityDay(ctx context.Context, laundromatID kernel.UUID, date time.Time) (*laundromat.CapacityDay, error)
}
