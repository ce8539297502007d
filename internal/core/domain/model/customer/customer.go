// Package customer contains the Customer aggregate. Customers are the owners
// of orders; guests are full customers flagged as such, created on the fly at
// intake and upgraded in place if they later register.
package customer

import (
	"errors"
	"fmt"
	"strings"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/pkg/errs"
)

// ErrCustomerIsNotConstructed is returned when a Customer instance was not
// created through NewCustomer or RestoreCustomer.
var ErrCustomerIsNotConstructed = errors.New(
	"Customer must be created via NewCustomer or RestoreCustomer constructor")

// Customer is the aggregate root for an ordering customer.
// One customer has many orders; the email address is the storefront identity
// used for magic links and find-or-create at guest intake.
type Customer struct {
	id    kernel.UUID
	name  string
	email string
	phone string
	guest bool

	isConstructed bool
}

// NewCustomer creates a customer with validation. A guest customer is created
// during intake when the email is not yet linked to an account.
func NewCustomer(id kernel.UUID, name, email, phone string, guest bool) (*Customer, error) {
	c := &Customer{
		phone:         phone,
		guest:         guest,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setEmail(email),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCustomer reconstructs a customer from persistence.
func RestoreCustomer(id kernel.UUID, name, email, phone string, guest bool) (*Customer, error) {
	return NewCustomer(id, name, email, phone, guest)
}

// Validate ensures the Customer was created through a constructor.
func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

// IsEqual compares two customers by their unique identifiers.
func (c *Customer) IsEqual(other *Customer) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the customer's unique identifier.
func (c *Customer) ID() kernel.UUID {
	return c.id
}

// Name returns the customer's display name.
func (c *Customer) Name() string {
	return c.name
}

// Email returns the contact email used for magic links and notifications.
func (c *Customer) Email() string {
	return c.email
}

// Phone returns the optional contact phone, possibly empty.
func (c *Customer) Phone() string {
	return c.phone
}

// IsGuest reports whether the customer checked out without an account.
func (c *Customer) IsGuest() bool {
	return c.guest
}

// Register links the guest to a full account, clearing the guest flag.
func (c *Customer) Register() {
	c.guest = false
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("customer name")
	}
	c.name = name
	return nil
}

func (c *Customer) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("customer email")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.Contains(email, " ") {
		return errs.NewValueIsInvalidErrorWithCause("customer email",
			fmt.Errorf("%q is not a valid email address", email))
	}
	c.email = strings.ToLower(email)
	return nil
}
