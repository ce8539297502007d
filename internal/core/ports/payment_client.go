package ports

import (
	"context"
	"errors"

	"washday/internal/core/domain/model/kernel"
)

// ErrPaymentFailed is returned when the payment provider declines or cannot
// process a capture. The delivered transition is rolled back when capture
// fails; the order stays en route until the driver retries.
var ErrPaymentFailed = errors.New("payment capture failed")

// PaymentClient captures the final charge against the customer's stored
// payment method when an order is delivered.
type PaymentClient interface {
	// Capture charges the amount for the order. A decline or provider
	// error is returned wrapping ErrPaymentFailed.
	Capture(ctx context.Context, orderID kernel.UUID, amount kernel.Money) error
}
