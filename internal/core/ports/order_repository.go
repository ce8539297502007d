// Package ports defines the contracts between the application core and
// infrastructure. Repositories persist aggregates, the unit of work scopes
// them to one transaction, and the outbound ports cover notification
// delivery, payment capture and photo storage.
package ports

import (
	"context"
	"time"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate together with its initial
	// status history entry.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order and appends any
	// uncommitted history entries. The write is conditional on the
	// aggregate's version: when another writer got there first the
	// update touches no rows and a version error wrapping
	// errs.ErrVersionIsInvalid is returned.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier, history included.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByAccessToken retrieves an order by its guest tracking token.
	// Token expiry is the caller's concern; the repository only matches
	// the token value.
	GetByAccessToken(ctx context.Context, token string) (*order.Order, error)

	// GetAllActive retrieves orders that are not in a terminal status,
	// oldest pickup date first.
	GetAllActive(ctx context.Context) ([]*order.Order, error)

	// GetAllDeliveredBefore retrieves delivered orders whose delivery
	// happened before the cutoff. Used by the retention job to archive
	// old records.
	GetAllDeliveredBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
