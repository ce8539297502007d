package order

import (
	"errors"
	"fmt"
	"time"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrLaundromatAlreadyAssigned is returned when routing tries to assign a
	// laundromat to an order that already has one.
	ErrLaundromatAlreadyAssigned = errors.New("order already has an assigned laundromat")
)

// Order is the aggregate root for a laundry pickup-and-delivery order. It owns
// the order's status lifecycle, its address snapshots, its financial fields,
// and its append-only status history.
//
// Order maintains these invariants:
//   - Status transitions follow the transition table in Status
//   - The total never falls below the minimum applied at intake
//   - Address snapshots are fixed at creation
//   - Measured weight and pickup photo are recorded exactly once, at pickup
//   - Delivery notes are recorded at delivery
//   - Every accepted transition appends an audit entry
//
// Orders are never physically deleted; cancellation and archival are status
// transitions like any other.
type Order struct {
	id           kernel.UUID
	customerID   kernel.UUID
	laundromatID *kernel.UUID

	pickupAddress   Address
	deliveryAddress Address

	serviceType    ServiceType
	declaredPounds int
	pickupDate     time.Time
	timeWindow     TimeWindow

	status Status

	subtotal kernel.Money
	total    kernel.Money

	accessToken kernel.AccessToken

	pickedUpAt         *time.Time
	readyForDeliveryAt *time.Time
	deliveredAt        *time.Time

	weightOunces  *int
	photoKey      string
	deliveryNotes string

	// version backs optimistic concurrency in the repository layer.
	version int

	// uncommittedHistory holds audit entries not yet persisted.
	uncommittedHistory []HistoryEntry

	isConstructed bool
}

// NewOrder creates an order in Scheduled status from validated intake data.
// The subtotal and total are computed by the caller (see EstimateSubtotal and
// EstimateTotal) so the minimum-charge floor is already applied. No laundromat
// is assigned yet; routing calls AssignLaundromat before first persistence.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	pickupAddress Address,
	deliveryAddress Address,
	serviceType ServiceType,
	declaredPounds int,
	pickupDate time.Time,
	timeWindow TimeWindow,
	subtotal kernel.Money,
	total kernel.Money,
	accessToken kernel.AccessToken,
) (*Order, error) {
	o := &Order{
		status:        StatusScheduled,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setAddresses(pickupAddress, deliveryAddress),
		o.setService(serviceType, declaredPounds),
		o.setSchedule(pickupDate, timeWindow),
		o.setAmounts(subtotal, total),
		o.setAccessToken(accessToken),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence without re-running
// intake validation that already happened at creation time. The stored status
// and version are trusted as-is; the repository is the only caller.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	laundromatID *kernel.UUID,
	pickupAddress Address,
	deliveryAddress Address,
	serviceType ServiceType,
	declaredPounds int,
	pickupDate time.Time,
	timeWindow TimeWindow,
	status Status,
	subtotal kernel.Money,
	total kernel.Money,
	accessToken kernel.AccessToken,
	pickedUpAt *time.Time,
	readyForDeliveryAt *time.Time,
	deliveredAt *time.Time,
	weightOunces *int,
	photoKey string,
	deliveryNotes string,
	version int,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if version < 1 {
		return nil, errs.NewVersionIsInvalidError("order version",
			fmt.Errorf("%d is not a positive version", version))
	}

	o := &Order{
		status:             status,
		laundromatID:       laundromatID,
		pickedUpAt:         pickedUpAt,
		readyForDeliveryAt: readyForDeliveryAt,
		deliveredAt:        deliveredAt,
		weightOunces:       weightOunces,
		photoKey:           photoKey,
		deliveryNotes:      deliveryNotes,
		version:            version,
		isConstructed:      true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setAddresses(pickupAddress, deliveryAddress),
		o.setService(serviceType, declaredPounds),
		o.setSchedule(pickupDate, timeWindow),
		o.setAmounts(subtotal, total),
		o.setAccessToken(accessToken),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the ordering customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Laundromat returns the assigned laundromat's ID, or nil before routing.
func (o *Order) Laundromat() *kernel.UUID {
	return o.laundromatID
}

// PickupAddress returns the pickup address snapshot.
func (o *Order) PickupAddress() Address {
	return o.pickupAddress
}

// DeliveryAddress returns the delivery address snapshot.
func (o *Order) DeliveryAddress() Address {
	return o.deliveryAddress
}

// ServiceType returns the ordered service.
func (o *Order) ServiceType() ServiceType {
	return o.serviceType
}

// DeclaredPounds returns the customer's declared weight used for the estimate.
func (o *Order) DeclaredPounds() int {
	return o.declaredPounds
}

// PickupDate returns the scheduled pickup date.
func (o *Order) PickupDate() time.Time {
	return o.pickupDate
}

// TimeWindow returns the selected pickup slot.
func (o *Order) TimeWindow() TimeWindow {
	return o.timeWindow
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// Subtotal returns the pre-floor estimate.
func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

// Total returns the billed total with the minimum-charge floor applied.
func (o *Order) Total() kernel.Money {
	return o.total
}

// AccessToken returns the guest tracking token.
func (o *Order) AccessToken() kernel.AccessToken {
	return o.accessToken
}

// PickedUpAt returns when the laundry was collected, or nil.
func (o *Order) PickedUpAt() *time.Time {
	return o.pickedUpAt
}

// ReadyForDeliveryAt returns when processing finished, or nil.
func (o *Order) ReadyForDeliveryAt() *time.Time {
	return o.readyForDeliveryAt
}

// DeliveredAt returns when the order was returned to the customer, or nil.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// WeightOunces returns the measured weight in ounces, or nil before pickup.
func (o *Order) WeightOunces() *int {
	return o.weightOunces
}

// PhotoKey returns the object-storage key of the pickup photo, or empty.
func (o *Order) PhotoKey() string {
	return o.photoKey
}

// DeliveryNotes returns the driver's dropoff note, or empty.
func (o *Order) DeliveryNotes() string {
	return o.deliveryNotes
}

// Version returns the optimistic-concurrency version loaded from storage.
func (o *Order) Version() int {
	return o.version
}

// UncommittedHistory returns audit entries recorded since the aggregate was
// loaded. The repository persists and then clears them via MarkHistoryPersisted.
func (o *Order) UncommittedHistory() []HistoryEntry {
	return o.uncommittedHistory
}

// MarkHistoryPersisted clears the uncommitted audit entries after the
// repository has written them.
func (o *Order) MarkHistoryPersisted() {
	o.uncommittedHistory = nil
}

// AssignLaundromat routes the order to a laundromat. Assignment happens once,
// during creation, while the order is still Scheduled.
func (o *Order) AssignLaundromat(laundromatID kernel.UUID) error {
	if err := laundromatID.Validate(); err != nil {
		return err
	}
	if o.laundromatID != nil {
		return ErrLaundromatAlreadyAssigned
	}
	if o.status != StatusScheduled {
		return &InvalidTransitionError{From: o.status, To: StatusScheduled}
	}

	o.laundromatID = &laundromatID
	return nil
}

// ChangeStatus is the transition gate for all lifecycle moves that carry no
// extra payload. It checks the actor's role, applies the transition table,
// stamps milestone timestamps, and appends the audit entry. The PickedUp
// transition must go through RecordPickup instead, because it requires the
// measured weight and photo.
func (o *Order) ChangeStatus(to Status, actorRole kernel.Role, actorID kernel.UUID, now time.Time) error {
	if to == StatusPickedUp {
		return errs.NewValueIsRequiredError("measured weight (use RecordPickup for the picked_up transition)")
	}
	return o.applyTransition(to, actorRole, actorID, now)
}

// RecordPickup applies the picked_up transition, recording the measured
// weight and the pickup photo reference taken by the driver.
func (o *Order) RecordPickup(
	weightOunces int, photoKey string, actorRole kernel.Role, actorID kernel.UUID, now time.Time,
) error {
	if weightOunces <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("measured weight",
			fmt.Errorf("%d ounces is not greater than 0", weightOunces))
	}

	if err := o.applyTransition(StatusPickedUp, actorRole, actorID, now); err != nil {
		return err
	}

	o.weightOunces = &weightOunces
	o.photoKey = photoKey
	return nil
}

// RecordDelivery applies the delivered transition, keeping the driver's
// dropoff note ("left at front door"). Notes are optional; ChangeStatus also
// accepts the delivered target when there is nothing to note.
func (o *Order) RecordDelivery(notes string, actorRole kernel.Role, actorID kernel.UUID, now time.Time) error {
	if err := o.applyTransition(StatusDelivered, actorRole, actorID, now); err != nil {
		return err
	}

	o.deliveryNotes = notes
	return nil
}

// Cancel calls the order off. Allowed from any non-terminal state; the check
// runs against the current status at call time, so the caller must hold the
// freshly loaded aggregate inside the same transaction that commits it.
func (o *Order) Cancel(actorRole kernel.Role, actorID kernel.UUID, now time.Time) error {
	return o.applyTransition(StatusCancelled, actorRole, actorID, now)
}

// Archive retires the order from active dashboards. Reachable from any state
// except Cancelled or a prior Archived, including Delivered after its
// retention window.
func (o *Order) Archive(actorRole kernel.Role, actorID kernel.UUID, now time.Time) error {
	return o.applyTransition(StatusArchived, actorRole, actorID, now)
}

func (o *Order) applyTransition(to Status, actorRole kernel.Role, actorID kernel.UUID, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actorRole.Validate(); err != nil {
		return err
	}
	if err := actorID.Validate(); err != nil {
		return err
	}
	if !to.AllowedBy(actorRole) {
		return errs.NewValueIsInvalidErrorWithCause("actor role",
			fmt.Errorf("%s may not set status %s", actorRole, to))
	}

	from := o.status
	newStatus, err := o.status.TransitionTo(to)
	if err != nil {
		return err
	}

	entry, err := NewHistoryEntry(from, newStatus, actorRole, actorID, now)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.uncommittedHistory = append(o.uncommittedHistory, entry)

	switch newStatus {
	case StatusPickedUp:
		o.pickedUpAt = &now
	case StatusReadyForDelivery:
		o.readyForDeliveryAt = &now
	case StatusDelivered:
		o.deliveredAt = &now
	}

	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setAddresses(pickup, delivery Address) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	if err := delivery.Validate(); err != nil {
		return err
	}
	o.pickupAddress = pickup
	o.deliveryAddress = delivery
	return nil
}

func (o *Order) setService(serviceType ServiceType, declaredPounds int) error {
	if err := serviceType.Validate(); err != nil {
		return err
	}
	if declaredPounds <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("declared pounds",
			fmt.Errorf("%d is not greater than 0", declaredPounds))
	}
	o.serviceType = serviceType
	o.declaredPounds = declaredPounds
	return nil
}

func (o *Order) setSchedule(pickupDate time.Time, timeWindow TimeWindow) error {
	if pickupDate.IsZero() {
		return errs.NewValueIsRequiredError("pickup date")
	}
	if err := timeWindow.Validate(); err != nil {
		return err
	}
	o.pickupDate = pickupDate
	o.timeWindow = timeWindow
	return nil
}

func (o *Order) setAmounts(subtotal, total kernel.Money) error {
	if err := subtotal.Validate(); err != nil {
		return err
	}
	if err := total.Validate(); err != nil {
		return err
	}
	belowSubtotal, err := total.LessThan(subtotal)
	if err != nil {
		return err
	}
	if belowSubtotal {
		return errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("total %s is below subtotal %s", total, subtotal))
	}
	o.subtotal = subtotal
	o.total = total
	return nil
}

func (o *Order) setAccessToken(token kernel.AccessToken) error {
	if err := token.Validate(); err != nil {
		return err
	}
	o.accessToken = token
	return nil
}
