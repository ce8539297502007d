package kernel

import (
	"fmt"

	"washday/internal/pkg/errs"
	"washday/internal/pkg/guard"
)

// DefaultCurrency is the currency assumed for all storefront pricing.
const DefaultCurrency = "USD"

// ErrMoneyIsNotConstructed is returned when validating a zero-value Money.
// Money must be created via NewMoney or NewMoneyFromCents.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney or NewMoneyFromCents constructors")

// Money is an immutable value object representing a monetary amount in minor
// units (cents) of a single currency. Amounts are never negative: order totals,
// minimum charges, and per-pound rates are all absolute prices.
//
// Example:
//
//	total, err := kernel.NewMoney(3500, kernel.DefaultCurrency)
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(total) // Output: 35.00 USD
type Money struct { //nolint:recvcheck //using for validation
	cents    int64
	currency string
	guard    guard.ConstructorGuard
}

// NewMoney creates a Money value from an amount in minor units and a currency
// code. The amount must not be negative and the currency must be a 3-letter
// code.
func NewMoney(cents int64, currency string) (Money, error) {
	m := Money{
		guard: guard.NewConstructorGuard(),
	}

	if err := m.setCents(cents); err != nil {
		return Money{}, err
	}
	if err := m.setCurrency(currency); err != nil {
		return Money{}, err
	}

	return m, nil
}

// NewMoneyFromCents creates a Money value in the default currency.
func NewMoneyFromCents(cents int64) (Money, error) {
	return NewMoney(cents, DefaultCurrency)
}

// Validate ensures the Money value was created through a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Cents returns the amount in minor units.
func (m Money) Cents() int64 {
	return m.cents
}

// Currency returns the 3-letter currency code.
func (m Money) Currency() string {
	return m.currency
}

// IsEqual compares two Money values by amount and currency.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents && m.currency == other.currency
}

// LessThan reports whether m is strictly smaller than other.
// Returns an error when the currencies differ.
func (m Money) LessThan(other Money) (bool, error) {
	if m.currency != other.currency {
		return false, errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("cannot compare %s with %s", m.currency, other.currency))
	}
	return m.cents < other.cents, nil
}

// Add returns the sum of two Money values in the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("cannot add %s to %s", other.currency, m.currency))
	}
	return NewMoney(m.cents+other.cents, m.currency)
}

// String returns a human-readable "units.cents CUR" representation.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d %s", m.cents/100, m.cents%100, m.currency)
}

func (m *Money) setCents(cents int64) error {
	if cents < 0 {
		return errs.NewValueIsInvalidErrorWithCause("cents",
			fmt.Errorf("%d is negative", cents))
	}
	m.cents = cents
	return nil
}

func (m *Money) setCurrency(currency string) error {
	if len(currency) != 3 {
		return errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%q is not a 3-letter currency code", currency))
	}
	m.currency = currency
	return nil
}
