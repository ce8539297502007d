package http

import "time"

// Error is the body every non-2xx response carries.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AddressPayload is a postal address in requests and responses.
type AddressPayload struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

// CreateOrderRequest is the intake payload for a new pickup order.
// pickup_date is a calendar date in 2006-01-02 form; the time window
// narrows it to a slot.
type CreateOrderRequest struct {
	CustomerName    string         `json:"customer_name"`
	CustomerEmail   string         `json:"customer_email"`
	CustomerPhone   string         `json:"customer_phone"`
	PickupAddress   AddressPayload `json:"pickup_address"`
	DeliveryAddress AddressPayload `json:"delivery_address"`
	ServiceType     string         `json:"service_type"`
	DeclaredPounds  int            `json:"declared_pounds"`
	PickupDate      string         `json:"pickup_date"`
	TimeWindow      string         `json:"time_window"`
	AddOnsCents     int64          `json:"add_ons_cents"`
}

// CreateOrderResponse returns the new order's identifiers and the guest
// magic link the customer tracks it with.
type CreateOrderResponse struct {
	ID             string    `json:"id"`
	AccessToken    string    `json:"access_token"`
	TrackingURL    string    `json:"tracking_url"`
	TokenExpiresAt time.Time `json:"token_expires_at"`
	SubtotalCents  int64     `json:"subtotal_cents"`
	TotalCents     int64     `json:"total_cents"`
}

// ChangeStatusRequest asks for one lifecycle transition. weight_ounces and
// photo_key only apply to the picked_up target; delivery_notes to delivered.
type ChangeStatusRequest struct {
	Status        string `json:"status"`
	WeightOunces  *int   `json:"weight_ounces,omitempty"`
	PhotoKey      string `json:"photo_key,omitempty"`
	DeliveryNotes string `json:"delivery_notes,omitempty"`
}

// OrderStatusResponse is the order snapshot returned after a successful
// transition.
type OrderStatusResponse struct {
	ID                 string     `json:"id"`
	Status             string     `json:"status"`
	Version            int        `json:"version"`
	WeightOunces       *int       `json:"weight_ounces,omitempty"`
	DeliveryNotes      string     `json:"delivery_notes,omitempty"`
	PickedUpAt         *time.Time `json:"picked_up_at,omitempty"`
	ReadyForDeliveryAt *time.Time `json:"ready_for_delivery_at,omitempty"`
	DeliveredAt        *time.Time `json:"delivered_at,omitempty"`
}

// PhotoUploadResponse carries the storage key of an uploaded pickup photo.
type PhotoUploadResponse struct {
	PhotoKey string `json:"photo_key"`
}

// TrackOrderResponse is the customer-facing snapshot behind a magic link.
type TrackOrderResponse struct {
	ID              string              `json:"id"`
	Status          string              `json:"status"`
	ServiceType     string              `json:"service_type"`
	DeclaredPounds  int                 `json:"declared_pounds"`
	WeightOunces    *int                `json:"weight_ounces,omitempty"`
	PickupDate      time.Time           `json:"pickup_date"`
	TimeWindow      string              `json:"time_window"`
	PickupAddress   string              `json:"pickup_address"`
	DeliveryAddress string              `json:"delivery_address"`
	SubtotalCents   int64               `json:"subtotal_cents"`
	TotalCents      int64               `json:"total_cents"`
	Currency        string              `json:"currency"`
	DeliveryNotes   string              `json:"delivery_notes,omitempty"`
	PickedUpAt      *time.Time          `json:"picked_up_at,omitempty"`
	DeliveredAt     *time.Time          `json:"delivered_at,omitempty"`
	History         []TrackHistoryEntry `json:"history"`
}

// TrackHistoryEntry is one audit step on the tracking timeline.
type TrackHistoryEntry struct {
	From string    `json:"from"`
	To   string    `json:"to"`
	At   time.Time `json:"at"`
}

// CapacitySlot is the remaining availability of one laundromat for a date.
type CapacitySlot struct {
	LaundromatID string `json:"laundromat_id"`
	Name         string `json:"name"`
	Ceiling      int    `json:"ceiling"`
	Consumed     int    `json:"consumed"`
	Remaining    int    `json:"remaining"`
}

// ActiveOrder is one row of the staff dashboard listing.
type ActiveOrder struct {
	ID               string    `json:"id"`
	Status           string    `json:"status"`
	ServiceType      string    `json:"service_type"`
	PickupDate       time.Time `json:"pickup_date"`
	TimeWindow       string    `json:"time_window"`
	PickupPostalCode string    `json:"pickup_postal_code"`
	TotalCents       int64     `json:"total_cents"`
	CustomerName     string    `json:"customer_name"`
	CustomerEmail    string    `json:"customer_email"`
}
