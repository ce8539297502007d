package queries

import (
	"errors"
	"time"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/domain/model/order"
	"washday/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves every order that is not in a terminal
// status. Backs the staff dashboard.
type GetActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query to retrieve in-flight orders.
// This is a parameterless query.
func NewGetActiveOrdersQuery() GetActiveOrdersQuery {
	return GetActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// GetActiveOrdersQueryResponse is one dashboard row.
type GetActiveOrdersQueryResponse struct {
	OrderID          kernel.UUID
	Status           order.Status
	ServiceType      order.ServiceType
	PickupDate       time.Time
	TimeWindow       order.TimeWindow
	PickupPostalCode string
	TotalCents       int64
	CustomerName     string
	CustomerEmail    string
}
