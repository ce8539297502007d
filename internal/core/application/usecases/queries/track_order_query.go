// Package queries contains read-side operations in the CQRS architecture.
// Query handlers go straight to the database with raw SQL and return flat
// read models, bypassing the aggregates and the unit of work.
package queries

import (
	"errors"
	"time"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/domain/model/order"
	"washday/internal/pkg/guard"
)

var (
	ErrTrackOrderQueryIsNotConstructed = errors.New(
		"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
	)
	ErrAccessTokenIsRequired = errors.New("access token is required")

	// ErrAccessTokenExpired is returned when the tracking link is older
	// than its lifetime. The order still exists; only the guest link died.
	ErrAccessTokenExpired = errors.New("access token expired")
)

// TrackOrderQuery retrieves the guest tracking view of an order by its
// access token. No login needed; the token is the capability.
//
// Example:
//
//	query, err := NewTrackOrderQuery(token)
//	if err != nil {
//	    return err
//	}
//
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, ErrAccessTokenExpired) {
//	    // tell the guest to request a fresh link
//	}
type TrackOrderQuery struct {
	accessToken string

	guard guard.ConstructorGuard
}

// NewTrackOrderQuery creates a query to fetch the tracking view for a token.
func NewTrackOrderQuery(accessToken string) (TrackOrderQuery, error) {
	if accessToken == "" {
		return TrackOrderQuery{}, ErrAccessTokenIsRequired
	}

	return TrackOrderQuery{
		accessToken: accessToken,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}

// AccessToken returns the guest tracking token being resolved.
func (q TrackOrderQuery) AccessToken() string {
	return q.accessToken
}

// TrackOrderQueryResponse is the customer-facing view of an order.
type TrackOrderQueryResponse struct {
	OrderID         kernel.UUID
	Status          order.Status
	ServiceType     order.ServiceType
	DeclaredPounds  int
	WeightOunces    *int
	PickupDate      time.Time
	TimeWindow      order.TimeWindow
	PickupAddress   string
	DeliveryAddress string
	SubtotalCents   int64
	TotalCents      int64
	Currency        string
	DeliveryNotes   string
	PickedUpAt      *time.Time
	DeliveredAt     *time.Time
	History         []TrackOrderHistoryEntry
}

// TrackOrderHistoryEntry is one audit step on the tracking timeline.
type TrackOrderHistoryEntry struct {
	From order.Status
	To   order.Status
	At   time.Time
}
