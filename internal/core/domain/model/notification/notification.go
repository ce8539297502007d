// Package notification contains the Notification aggregate, a queued message
// about an order event waiting to be delivered to the customer.
//
// Notifications are written in the same transaction that changes the order,
// then delivered after commit. Delivery is best effort: a failed send leaves
// the notification pending and a background job retries it later, so an order
// state change never fails because a broker or mail gateway was down.
package notification

import (
	"fmt"
	"time"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/pkg/errs"
)

// ErrNotificationIsNotConstructed is returned when a Notification was created
// with a default constructor instead of NewNotification or RestoreNotification.
var ErrNotificationIsNotConstructed = fmt.Errorf("notification is not constructed")

// Kind identifies what happened to the order.
type Kind int

const (
	KindUnknown Kind = iota
	KindOrderScheduled
	KindStatusChanged
	KindOrderCancelled
)

var kindNames = map[Kind]string{
	KindOrderScheduled: "order_scheduled",
	KindStatusChanged:  "status_changed",
	KindOrderCancelled: "order_cancelled",
}

// KindFromString parses a kind from its storage representation.
func KindFromString(name string) (Kind, error) {
	for kind, kindName := range kindNames {
		if kindName == name {
			return kind, nil
		}
	}
	return KindUnknown, errs.NewValueIsInvalidError("kind")
}

func (k Kind) Validate() error {
	if _, ok := kindNames[k]; !ok {
		return errs.NewValueIsInvalidError("kind")
	}
	return nil
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Delivery states for a queued notification.
const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

// MaxAttempts is the number of delivery tries before a notification is
// marked failed and left for manual inspection.
const MaxAttempts = 5

// Notification is a queued order event message.
type Notification struct {
	id      kernel.UUID
	orderID kernel.UUID
	kind    Kind

	// message is the rendered customer-facing text, built when the order
	// event happens so retries do not need to reload the order.
	message string

	status    string
	attempts  int
	createdAt time.Time
	sentAt    *time.Time

	isConstructed bool
}

// NewNotification queues a new pending notification for an order event.
func NewNotification(
	id kernel.UUID, orderID kernel.UUID, kind Kind, message string, now time.Time,
) (*Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if message == "" {
		return nil, errs.NewValueIsRequiredError("message")
	}

	return &Notification{
		id:            id,
		orderID:       orderID,
		kind:          kind,
		message:       message,
		status:        StatusPending,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreNotification rebuilds a notification from storage.
func RestoreNotification(
	id kernel.UUID, orderID kernel.UUID, kind Kind, message string,
	status string, attempts int, createdAt time.Time, sentAt *time.Time,
) (*Notification, error) {
	n, err := NewNotification(id, orderID, kind, message, createdAt)
	if err != nil {
		return nil, err
	}
	n.status = status
	n.attempts = attempts
	n.sentAt = sentAt
	return n, nil
}

func (n *Notification) Validate() error {
	if !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

func (n *Notification) ID() kernel.UUID       { return n.id }
func (n *Notification) OrderID() kernel.UUID  { return n.orderID }
func (n *Notification) Kind() Kind            { return n.kind }
func (n *Notification) Message() string       { return n.message }
func (n *Notification) Status() string        { return n.status }
func (n *Notification) Attempts() int         { return n.attempts }
func (n *Notification) CreatedAt() time.Time  { return n.createdAt }
func (n *Notification) SentAt() *time.Time    { return n.sentAt }

// MarkSent records a successful delivery.
func (n *Notification) MarkSent(now time.Time) {
	n.status = StatusSent
	n.attempts++
	n.sentAt = &now
}

// MarkAttemptFailed counts a failed delivery try. After MaxAttempts the
// notification moves to failed and the retry job stops picking it up.
func (n *Notification) MarkAttemptFailed() {
	n.attempts++
	if n.attempts >= MaxAttempts {
		n.status = StatusFailed
	}
}
