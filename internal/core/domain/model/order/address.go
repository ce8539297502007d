package order

import (
	"fmt"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/pkg/errs"
	"washday/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when validating a zero-value Address.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address is an immutable snapshot of a street address, copied into the order
// at creation time. The order owns its snapshot exclusively: later edits to a
// customer's saved addresses never change past orders.
type Address struct { //nolint:recvcheck //using for validation
	line1      string
	line2      string
	city       string
	postalCode kernel.PostalCode

	guard guard.ConstructorGuard
}

// NewAddress creates an address snapshot. Line1 and city are required;
// line2 is optional.
func NewAddress(line1, line2, city string, postalCode kernel.PostalCode) (Address, error) {
	a := Address{
		line2: line2,
		guard: guard.NewConstructorGuard(),
	}

	if line1 == "" {
		return Address{}, errs.NewValueIsRequiredError("address line1")
	}
	if city == "" {
		return Address{}, errs.NewValueIsRequiredError("address city")
	}
	if err := postalCode.Validate(); err != nil {
		return Address{}, err
	}

	a.line1 = line1
	a.city = city
	a.postalCode = postalCode
	return a, nil
}

// Validate ensures the Address was created through the constructor.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Line1 returns the primary street line.
func (a Address) Line1() string {
	return a.line1
}

// Line2 returns the optional secondary line (unit, apartment), possibly empty.
func (a Address) Line2() string {
	return a.line2
}

// City returns the city name.
func (a Address) City() string {
	return a.city
}

// PostalCode returns the postal code used for laundromat routing.
func (a Address) PostalCode() kernel.PostalCode {
	return a.postalCode
}

// String returns a single-line rendering for logs and notifications.
func (a Address) String() string {
	if a.line2 != "" {
		return fmt.Sprintf("%s, %s, %s %s", a.line1, a.line2, a.city, a.postalCode)
	}
	return fmt.Sprintf("%s, %s %s", a.line1, a.city, a.postalCode)
}
