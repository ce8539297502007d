package laundromat

import (
	"errors"
	"fmt"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/pkg/errs"
)

// ErrLaundromatIsNotConstructed is returned when a Laundromat instance was not
// created through NewLaundromat or RestoreLaundromat.
var ErrLaundromatIsNotConstructed = errors.New(
	"Laundromat must be created via NewLaundromat or RestoreLaundromat constructor")

// Laundromat is the aggregate root for a partner facility. It owns the
// facility's service area (the postal codes it covers), its daily order
// ceiling, and its active flag.
//
// Invariants:
//   - Must serve at least one postal code
//   - Daily capacity must be positive
//   - Only active laundromats receive new routing assignments; orders already
//     assigned keep their laundromat when it is deactivated mid-day
type Laundromat struct {
	id            kernel.UUID
	name          string
	serviceAreas  []kernel.PostalCode
	dailyCapacity int
	active        bool

	isConstructed bool
}

// NewLaundromat creates an active laundromat with validation.
func NewLaundromat(
	id kernel.UUID, name string, serviceAreas []kernel.PostalCode, dailyCapacity int,
) (*Laundromat, error) {
	return newLaundromat(id, name, serviceAreas, dailyCapacity, true)
}

// RestoreLaundromat reconstructs a laundromat from persistence, including its
// stored active flag.
func RestoreLaundromat(
	id kernel.UUID, name string, serviceAreas []kernel.PostalCode, dailyCapacity int, active bool,
) (*Laundromat, error) {
	return newLaundromat(id, name, serviceAreas, dailyCapacity, active)
}

func newLaundromat(
	id kernel.UUID, name string, serviceAreas []kernel.PostalCode, dailyCapacity int, active bool,
) (*Laundromat, error) {
	l := &Laundromat{
		active:        active,
		isConstructed: true,
	}

	if err := errors.Join(
		l.setID(id),
		l.setName(name),
		l.setServiceAreas(serviceAreas),
		l.setDailyCapacity(dailyCapacity),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// Validate ensures the Laundromat was created through a constructor.
func (l *Laundromat) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLaundromatIsNotConstructed
	}
	return nil
}

// IsEqual compares two laundromats by their unique identifiers.
func (l *Laundromat) IsEqual(other *Laundromat) bool {
	return other != nil && l.id.IsEqual(other.id)
}

// ID returns the laundromat's unique identifier.
func (l *Laundromat) ID() kernel.UUID {
	return l.id
}

// Name returns the facility name.
func (l *Laundromat) Name() string {
	return l.name
}

// ServiceAreas returns the postal codes this laundromat covers.
func (l *Laundromat) ServiceAreas() []kernel.PostalCode {
	return l.serviceAreas
}

// DailyCapacity returns the order ceiling per pickup date.
func (l *Laundromat) DailyCapacity() int {
	return l.dailyCapacity
}

// IsActive reports whether the laundromat accepts new routing assignments.
func (l *Laundromat) IsActive() bool {
	return l.active
}

// Covers reports whether the given postal code is inside the service area.
func (l *Laundromat) Covers(postalCode kernel.PostalCode) bool {
	for _, area := range l.serviceAreas {
		if area.IsEqual(postalCode) {
			return true
		}
	}
	return false
}

// Deactivate removes the laundromat from new routing decisions.
// Orders already assigned keep their assignment.
func (l *Laundromat) Deactivate() {
	l.active = false
}

// Activate returns the laundromat to the routing pool.
func (l *Laundromat) Activate() {
	l.active = true
}

func (l *Laundromat) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Laundromat) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("laundromat name")
	}
	l.name = name
	return nil
}

func (l *Laundromat) setServiceAreas(areas []kernel.PostalCode) error {
	if len(areas) == 0 {
		return errs.NewValueIsRequiredError("service areas")
	}
	for _, area := range areas {
		if err := area.Validate(); err != nil {
			return err
		}
	}
	l.serviceAreas = areas
	return nil
}

func (l *Laundromat) setDailyCapacity(capacity int) error {
	if capacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("daily capacity",
			fmt.Errorf("%d is not greater than 0", capacity))
	}
	l.dailyCapacity = capacity
	return nil
}
