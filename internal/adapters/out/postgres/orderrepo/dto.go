// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. Implements the repository pattern for the order
// aggregate, converting between the domain model and the relational schema.
package orderrepo

import (
	"time"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Both addresses are embedded snapshots copied at creation time; they never
// reference a customer address table, so later profile edits cannot rewrite
// where an in-flight order goes.
type OrderDTO struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID           uuid.UUID  `gorm:"type:uuid;index"`
	LaundromatID         *uuid.UUID `gorm:"type:uuid;index"`
	Pickup               AddressDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Delivery             AddressDTO `gorm:"embedded;embeddedPrefix:delivery_"`
	ServiceType          int
	DeclaredPounds       int
	PickupDate           time.Time `gorm:"index"`
	TimeWindow           int
	Status               int `gorm:"index"`
	SubtotalCents        int64
	TotalCents           int64
	Currency             string
	AccessToken          string `gorm:"uniqueIndex"`
	AccessTokenExpiresAt time.Time
	PickedUpAt           *time.Time
	ReadyForDeliveryAt   *time.Time
	DeliveredAt          *time.Time `gorm:"index"`
	WeightOunces         *int
	PhotoKey             string
	DeliveryNotes        string
	Version              int
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents an embedded address snapshot within the order table.
type AddressDTO struct {
	Line1      string
	Line2      string
	City       string
	PostalCode string
}

// HistoryDTO represents one append-only status transition row.
// Rows are only ever inserted; there is no update or delete path.
type HistoryDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	FromStatus int
	ToStatus   int
	ActorRole  int
	ActorID    uuid.UUID `gorm:"type:uuid"`
	At         time.Time
}

// TableName specifies the database table name for history entries.
func (HistoryDTO) TableName() string {
	return "order_history"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var laundromatID *uuid.UUID
	if id := aggregate.Laundromat(); id != nil {
		raw := id.Bytes()
		laundromatID = &raw
	}

	return OrderDTO{
		ID:                   aggregate.ID().Bytes(),
		CustomerID:           aggregate.CustomerID().Bytes(),
		LaundromatID:         laundromatID,
		Pickup:               addressFromDomain(aggregate.PickupAddress()),
		Delivery:             addressFromDomain(aggregate.DeliveryAddress()),
		ServiceType:          int(aggregate.ServiceType()),
		DeclaredPounds:       aggregate.DeclaredPounds(),
		PickupDate:           aggregate.PickupDate(),
		TimeWindow:           int(aggregate.TimeWindow()),
		Status:               int(aggregate.Status()),
		SubtotalCents:        aggregate.Subtotal().Cents(),
		TotalCents:           aggregate.Total().Cents(),
		Currency:             aggregate.Total().Currency(),
		AccessToken:          aggregate.AccessToken().Value(),
		AccessTokenExpiresAt: aggregate.AccessToken().ExpiresAt(),
		PickedUpAt:           aggregate.PickedUpAt(),
		ReadyForDeliveryAt:   aggregate.ReadyForDeliveryAt(),
		DeliveredAt:          aggregate.DeliveredAt(),
		WeightOunces:         aggregate.WeightOunces(),
		PhotoKey:             aggregate.PhotoKey(),
		DeliveryNotes:        aggregate.DeliveryNotes(),
		Version:              aggregate.Version(),
	}
}

func addressFromDomain(address order.Address) AddressDTO {
	return AddressDTO{
		Line1:      address.Line1(),
		Line2:      address.Line2(),
		City:       address.City(),
		PostalCode: address.PostalCode().String(),
	}
}

func historyFromDomain(orderID kernel.UUID, entry order.HistoryEntry) HistoryDTO {
	return HistoryDTO{
		OrderID:    orderID.Bytes(),
		FromStatus: int(entry.From()),
		ToStatus:   int(entry.To()),
		ActorRole:  int(entry.ActorRole()),
		ActorID:    entry.ActorID().Bytes(),
		At:         entry.At(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var laundromatID *kernel.UUID
	if dto.LaundromatID != nil {
		lID, laundromatErr := kernel.UUIDFromBytes((*dto.LaundromatID)[:])
		if laundromatErr != nil {
			return nil, laundromatErr
		}
		laundromatID = &lID
	}

	pickup, err := addressToDomain(dto.Pickup)
	if err != nil {
		return nil, err
	}
	delivery, err := addressToDomain(dto.Delivery)
	if err != nil {
		return nil, err
	}

	subtotal, err := kernel.NewMoney(dto.SubtotalCents, dto.Currency)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.TotalCents, dto.Currency)
	if err != nil {
		return nil, err
	}

	token, err := kernel.RestoreAccessToken(dto.AccessToken, dto.AccessTokenExpiresAt)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, customerID, laundromatID,
		pickup, delivery,
		order.ServiceType(dto.ServiceType), dto.DeclaredPounds,
		dto.PickupDate, order.TimeWindow(dto.TimeWindow),
		order.Status(dto.Status),
		subtotal, total, token,
		dto.PickedUpAt, dto.ReadyForDeliveryAt, dto.DeliveredAt,
		dto.WeightOunces, dto.PhotoKey, dto.DeliveryNotes, dto.Version,
	)
}

func addressToDomain(dto AddressDTO) (order.Address, error) {
	postalCode, err := kernel.NewPostalCode(dto.PostalCode)
	if err != nil {
		return order.Address{}, err
	}
	return order.NewAddress(dto.Line1, dto.Line2, dto.City, postalCode)
}
