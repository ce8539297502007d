package ports

import (
	"context"

	"washday/internal/core/domain/model/customer"
	"washday/internal/core/domain/model/kernel"
)

// CustomerRepository defines the persistence contract for customers.
type CustomerRepository interface {
	// Add persists a new customer.
	Add(ctx context.Context, aggregate *customer.Customer) error

	// Update persists changes to an existing customer.
	Update(ctx context.Context, aggregate *customer.Customer) error

	// Get retrieves a customer by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)

	// GetByEmail retrieves a customer by email. Emails are stored
	// lowercased and unique, so guest checkouts with a known email
	// reuse the existing customer record.
	GetByEmail(ctx context.Context, email string) (*customer.Customer, error)
}
