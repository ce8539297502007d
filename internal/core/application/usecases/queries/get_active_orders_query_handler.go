package queries

import (
	"context"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler retrieves in-flight orders for the dashboard.
// Uses direct SQL for read performance in the CQRS pattern.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for dashboard queries.
// Requires a GORM database connection for query execution.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all active orders.
// Returns orders outside the terminal statuses, earliest pickup first.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.status,
			o.service_type,
			o.pickup_date,
			o.time_window,
			o.pickup_postal_code,
			o.total_cents,
			c.name,
			c.email
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.status NOT IN (?, ?, ?)
		ORDER BY o.pickup_date, o.id
	`, order.StatusDelivered, order.StatusCancelled, order.StatusArchived).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetActiveOrdersQueryResponse, 0)
	for rows.Next() {
		var resp GetActiveOrdersQueryResponse
		var id uuid.UUID
		var status, serviceType, timeWindow int

		err = rows.Scan(
			&id,
			&status,
			&serviceType,
			&resp.PickupDate,
			&timeWindow,
			&resp.PickupPostalCode,
			&resp.TotalCents,
			&resp.CustomerName,
			&resp.CustomerEmail,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.OrderID = orderID
		resp.Status = order.Status(status)
		resp.ServiceType = order.ServiceType(serviceType)
		resp.TimeWindow = order.TimeWindow(timeWindow)
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
