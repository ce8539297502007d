package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/domain/model/order"
	"washday/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackOrderQueryHandler resolves guest tracking tokens to order views.
type TrackOrderQueryHandler struct {
	db *gorm.DB
}

// NewTrackOrderQueryHandler creates a handler for tracking lookups.
// Requires a GORM database connection for query execution.
func NewTrackOrderQueryHandler(db *gorm.DB) TrackOrderQueryHandler {
	return TrackOrderQueryHandler{db: db}
}

// Handle executes the tracking lookup.
// Returns an object-not-found error for unknown tokens and
// ErrAccessTokenExpired for tokens past their lifetime, so the HTTP layer can
// tell the two cases apart.
func (h TrackOrderQueryHandler) Handle(
	ctx context.Context,
	query TrackOrderQuery,
) (TrackOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			service_type,
			declared_pounds,
			weight_ounces,
			pickup_date,
			time_window,
			pickup_line1, pickup_line2, pickup_city, pickup_postal_code,
			delivery_line1, delivery_line2, delivery_city, delivery_postal_code,
			subtotal_cents,
			total_cents,
			currency,
			access_token_expires_at,
			picked_up_at,
			delivered_at,
			delivery_notes
		FROM orders
		WHERE access_token = ?
	`, query.AccessToken()).Row()

	var resp TrackOrderQueryResponse
	var id uuid.UUID
	var status, serviceType, timeWindow int
	var weightOunces sql.NullInt64
	var pickupLine1, pickupLine2, pickupCity, pickupPostal string
	var deliveryLine1, deliveryLine2, deliveryCity, deliveryPostal string
	var expiresAt time.Time
	var pickedUpAt, deliveredAt sql.NullTime

	err := row.Scan(
		&id,
		&status,
		&serviceType,
		&resp.DeclaredPounds,
		&weightOunces,
		&resp.PickupDate,
		&timeWindow,
		&pickupLine1, &pickupLine2, &pickupCity, &pickupPostal,
		&deliveryLine1, &deliveryLine2, &deliveryCity, &deliveryPostal,
		&resp.SubtotalCents,
		&resp.TotalCents,
		&resp.Currency,
		&expiresAt,
		&pickedUpAt,
		&deliveredAt,
		&resp.DeliveryNotes,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return TrackOrderQueryResponse{}, errs.NewObjectNotFoundError("access token", query.AccessToken())
	}
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}

	if time.Now().UTC().After(expiresAt) {
		return TrackOrderQueryResponse{}, ErrAccessTokenExpired
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}
	resp.OrderID = orderID
	resp.Status = order.Status(status)
	resp.ServiceType = order.ServiceType(serviceType)
	resp.TimeWindow = order.TimeWindow(timeWindow)
	resp.PickupAddress = joinAddress(pickupLine1, pickupLine2, pickupCity, pickupPostal)
	resp.DeliveryAddress = joinAddress(deliveryLine1, deliveryLine2, deliveryCity, deliveryPostal)
	if weightOunces.Valid {
		w := int(weightOunces.Int64)
		resp.WeightOunces = &w
	}
	if pickedUpAt.Valid {
		resp.PickedUpAt = &pickedUpAt.Time
	}
	if deliveredAt.Valid {
		resp.DeliveredAt = &deliveredAt.Time
	}

	history, err := h.loadHistory(ctx, id)
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}
	resp.History = history

	return resp, nil
}

func (h TrackOrderQueryHandler) loadHistory(
	ctx context.Context, orderID uuid.UUID,
) ([]TrackOrderHistoryEntry, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			from_status,
			to_status,
			at
		FROM order_history
		WHERE order_id = ?
		ORDER BY at, id
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]TrackOrderHistoryEntry, 0)
	for rows.Next() {
		var from, to int
		var at time.Time
		if err = rows.Scan(&from, &to, &at); err != nil {
			return nil, err
		}
		history = append(history, TrackOrderHistoryEntry{
			From: order.Status(from),
			To:   order.Status(to),
			At:   at,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}

func joinAddress(line1, line2, city, postalCode string) string {
	address := line1
	if line2 != "" {
		address += ", " + line2
	}
	return address + ", " + city + " " + postalCode
}
