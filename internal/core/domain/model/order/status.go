package order

import (
	"fmt"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel error wrapped by InvalidTransitionError.
var ErrInvalidTransition = fmt.Errorf("invalid status transition")

// InvalidTransitionError is returned when a requested status change does not
// follow the lifecycle's transition table. It names both the current and the
// requested state so callers can report exactly what was rejected.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status represents the lifecycle state of an order.
// It implements a state machine with an explicit transition table so that
// orders always move through the physical workflow in sequence.
//
// State transitions:
//
//	Scheduled ─> EnRoutePickup ─> PickedUp ─> Processing ─>
//	ReadyForDelivery ─> EnRouteDelivery ─> Delivered ─> Archived
//
// Cancelled is reachable from any non-terminal state. Archived is reachable
// from any non-cancelled state, including Delivered, so completed orders can
// be archived after their retention window. Delivered, Cancelled, and
// Archived are terminal for the physical workflow.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusScheduled is the initial status after intake and routing.
	StatusScheduled

	// StatusEnRoutePickup indicates a driver is on the way to collect the laundry.
	StatusEnRoutePickup

	// StatusPickedUp indicates the laundry was collected and weighed.
	StatusPickedUp

	// StatusProcessing indicates the assigned laundromat is washing the order.
	StatusProcessing

	// StatusReadyForDelivery indicates the clean laundry is awaiting a driver.
	StatusReadyForDelivery

	// StatusEnRouteDelivery indicates a driver is returning the laundry.
	StatusEnRouteDelivery

	// StatusDelivered indicates the order was returned to the customer.
	// Payment capture is finalized on this transition.
	StatusDelivered

	// StatusCancelled indicates the order was called off before delivery.
	StatusCancelled

	// StatusArchived indicates the order was retired from the active dashboards.
	StatusArchived
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:          "unknown",
		StatusScheduled:        "scheduled",
		StatusEnRoutePickup:    "en_route_pickup",
		StatusPickedUp:         "picked_up",
		StatusProcessing:       "processing",
		StatusReadyForDelivery: "ready_for_delivery",
		StatusEnRouteDelivery:  "en_route_delivery",
		StatusDelivered:        "delivered",
		StatusCancelled:        "cancelled",
		StatusArchived:         "archived",
	}
}

// successor maps each in-progress state to its single designated next state.
func successor() map[Status]Status {
	return map[Status]Status{
		StatusScheduled:        StatusEnRoutePickup,
		StatusEnRoutePickup:    StatusPickedUp,
		StatusPickedUp:         StatusProcessing,
		StatusProcessing:       StatusReadyForDelivery,
		StatusReadyForDelivery: StatusEnRouteDelivery,
		StatusEnRouteDelivery:  StatusDelivered,
	}
}

// StatusFromString parses a status as carried in API requests and storage.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != StatusUnknown && name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status value is one of the defined lifecycle states.
// StatusUnknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lifecycle name of the status ("scheduled",
// "en_route_pickup", ...). Safe to call on any Status value; invalid
// values render as "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further workflow transition is expected.
// Delivered still accepts the housekeeping move to Archived.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusArchived
}

// IsCancellable reports whether the order may still be called off.
// Terminal states are never cancellable.
func (s Status) IsCancellable() bool {
	return !s.IsTerminal() && s != StatusUnknown
}

// CanTransitionTo reports whether moving from s to target follows the
// transition table: each state accepts only its designated successor, a
// cancellation from any non-terminal state, or archival from any state that
// is not already cancelled or archived.
func (s Status) CanTransitionTo(target Status) bool {
	if s.Validate() != nil || target.Validate() != nil {
		return false
	}

	switch target {
	case StatusCancelled:
		return s.IsCancellable()
	case StatusArchived:
		return s != StatusCancelled && s != StatusArchived
	default:
		return successor()[s] == target
	}
}

// TransitionTo applies the transition table and returns the new status.
// Re-submitting the current status (picked_up -> picked_up) is rejected like
// any other off-table request, so duplicate driver submissions surface as
// InvalidTransitionError instead of silently applying twice.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return StatusUnknown, err
	}
	if !s.CanTransitionTo(target) {
		return StatusUnknown, &InvalidTransitionError{From: s, To: target}
	}
	return target, nil
}

// AllowedBy reports whether the given actor role may request a transition to
// this status. Admins may apply any valid transition. Drivers own the
// pickup/delivery legs. Customers may only cancel.
func (s Status) AllowedBy(role kernel.Role) bool {
	switch role {
	case kernel.RoleAdmin:
		return true
	case kernel.RoleDriver:
		switch s {
		case StatusEnRoutePickup, StatusPickedUp, StatusEnRouteDelivery, StatusDelivered:
			return true
		}
		return false
	case kernel.RoleCustomer:
		return s == StatusCancelled
	default:
		return false
	}
}
