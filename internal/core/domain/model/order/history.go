package order

import (
	"time"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/pkg/errs"
	"washday/internal/pkg/guard"
)

// ErrHistoryEntryIsNotConstructed is returned when validating a zero-value
// HistoryEntry.
var ErrHistoryEntryIsNotConstructed = errs.NewValueIsRequiredError(
	"history entry must be created via NewHistoryEntry constructor")

// HistoryEntry is one row of the order's append-only audit log: who moved the
// order, from which state, to which state, and when. Entries are immutable
// and never overwritten; the full history of an order is the ordered list of
// its entries.
type HistoryEntry struct { //nolint:recvcheck //using for validation
	from      Status
	to        Status
	actorRole kernel.Role
	actorID   kernel.UUID
	at        time.Time

	guard guard.ConstructorGuard
}

// NewHistoryEntry creates an audit entry for an accepted transition.
func NewHistoryEntry(from, to Status, actorRole kernel.Role, actorID kernel.UUID, at time.Time) (HistoryEntry, error) {
	e := HistoryEntry{
		guard: guard.NewConstructorGuard(),
	}

	if err := from.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if err := to.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if err := actorRole.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if err := actorID.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if at.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("history entry timestamp")
	}

	e.from = from
	e.to = to
	e.actorRole = actorRole
	e.actorID = actorID
	e.at = at
	return e, nil
}

// Validate ensures the entry was created through the constructor.
func (e HistoryEntry) Validate() error {
	return e.guard.Validate(ErrHistoryEntryIsNotConstructed)
}

// From returns the state the order left.
func (e HistoryEntry) From() Status {
	return e.from
}

// To returns the state the order entered.
func (e HistoryEntry) To() Status {
	return e.to
}

// ActorRole returns the role of the actor who requested the transition.
func (e HistoryEntry) ActorRole() kernel.Role {
	return e.actorRole
}

// ActorID returns the identity of the actor who requested the transition.
func (e HistoryEntry) ActorID() kernel.UUID {
	return e.actorID
}

// At returns when the transition was accepted.
func (e HistoryEntry) At() time.Time {
	return e.at
}
