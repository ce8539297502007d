package laundromat

import (
	"errors"
	"fmt"
	"time"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/pkg/errs"
)

var (
	// ErrCapacityExceeded is returned when reserving a slot on a day whose
	// consumed count has reached the ceiling.
	ErrCapacityExceeded = errors.New("daily capacity exceeded")

	// ErrCapacityDayIsNotConstructed is returned when a CapacityDay was not
	// created through NewCapacityDay or RestoreCapacityDay.
	ErrCapacityDayIsNotConstructed = errors.New(
		"CapacityDay must be created via NewCapacityDay or RestoreCapacityDay constructor")
)

// DateKey normalizes a timestamp to its UTC calendar date. CapacityDay rows
// are keyed by (laundromat, DateKey); the implicit day rollover is the date
// key changing, there is no explicit reset job.
func DateKey(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CapacityDay tracks consumed capacity for one laundromat on one pickup date.
// Rows are created lazily the first time a date is booked. The consumed count
// never exceeds the ceiling: reservation is rejected, not overbooked.
//
// The in-memory Reserve/Release here model the ledger for domain logic and
// queries; the persistence layer enforces the same rule with a single
// conditional update so concurrent reservations cannot race past the ceiling.
type CapacityDay struct {
	laundromatID kernel.UUID
	date         time.Time
	consumed     int
	ceiling      int

	isConstructed bool
}

// NewCapacityDay creates a fresh day with zero consumed slots.
func NewCapacityDay(laundromatID kernel.UUID, date time.Time, ceiling int) (*CapacityDay, error) {
	return RestoreCapacityDay(laundromatID, date, 0, ceiling)
}

// RestoreCapacityDay reconstructs a day from persistence.
func RestoreCapacityDay(laundromatID kernel.UUID, date time.Time, consumed, ceiling int) (*CapacityDay, error) {
	if err := laundromatID.Validate(); err != nil {
		return nil, err
	}
	if date.IsZero() {
		return nil, errs.NewValueIsRequiredError("capacity date")
	}
	if ceiling <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("capacity ceiling",
			fmt.Errorf("%d is not greater than 0", ceiling))
	}
	if consumed < 0 || consumed > ceiling {
		return nil, errs.NewValueIsOutOfRangeError("consumed capacity", consumed, 0, ceiling)
	}

	return &CapacityDay{
		laundromatID:  laundromatID,
		date:          DateKey(date),
		consumed:      consumed,
		ceiling:       ceiling,
		isConstructed: true,
	}, nil
}

// Validate ensures the CapacityDay was created through a constructor.
func (c *CapacityDay) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCapacityDayIsNotConstructed
	}
	return nil
}

// LaundromatID returns the laundromat this ledger row belongs to.
func (c *CapacityDay) LaundromatID() kernel.UUID {
	return c.laundromatID
}

// Date returns the normalized calendar date of this row.
func (c *CapacityDay) Date() time.Time {
	return c.date
}

// Consumed returns the number of slots already booked.
func (c *CapacityDay) Consumed() int {
	return c.consumed
}

// Ceiling returns the maximum bookable slots for the day.
func (c *CapacityDay) Ceiling() int {
	return c.ceiling
}

// Remaining returns how many slots are still bookable.
func (c *CapacityDay) Remaining() int {
	return c.ceiling - c.consumed
}

// HasCapacity reports whether at least one slot remains.
func (c *CapacityDay) HasCapacity() bool {
	return c.consumed < c.ceiling
}

// Reserve books one slot, or returns ErrCapacityExceeded at the ceiling.
func (c *CapacityDay) Reserve() error {
	if !c.HasCapacity() {
		return fmt.Errorf("%w: laundromat %s on %s", ErrCapacityExceeded,
			c.laundromatID, c.date.Format(time.DateOnly))
	}
	c.consumed++
	return nil
}

// Release frees one slot after a cancellation. Never goes below zero.
func (c *CapacityDay) Release() {
	if c.consumed > 0 {
		c.consumed--
	}
}
