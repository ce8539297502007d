package queries

import (
	"errors"
	"time"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/pkg/guard"
)

var (
	ErrGetCapacityQueryIsNotConstructed = errors.New(
		"GetCapacityQuery must be created via NewGetCapacityQuery constructor",
	)
	ErrDateIsRequired = errors.New("date is required")
)

// GetCapacityQuery retrieves the remaining pickup slots for every active
// laundromat serving a postal code on a date. Backs the slot picker in the
// scheduling flow.
type GetCapacityQuery struct {
	postalCode kernel.PostalCode
	date       time.Time

	guard guard.ConstructorGuard
}

// NewGetCapacityQuery creates a query for remaining capacity.
func NewGetCapacityQuery(postalCode kernel.PostalCode, date time.Time) (GetCapacityQuery, error) {
	if err := postalCode.Validate(); err != nil {
		return GetCapacityQuery{}, err
	}
	if date.IsZero() {
		return GetCapacityQuery{}, ErrDateIsRequired
	}

	return GetCapacityQuery{
		postalCode: postalCode,
		date:       date,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCapacityQuery) Validate() error {
	return q.guard.Validate(ErrGetCapacityQueryIsNotConstructed)
}

// PostalCode returns the pickup postal code being checked.
func (q GetCapacityQuery) PostalCode() kernel.PostalCode {
	return q.postalCode
}

// Date returns the pickup date being checked.
func (q GetCapacityQuery) Date() time.Time {
	return q.date
}

// GetCapacityQueryResponse is the remaining capacity of one laundromat.
type GetCapacityQueryResponse struct {
	LaundromatID kernel.UUID
	Name         string
	Ceiling      int
	Consumed     int
	Remaining    int
}
