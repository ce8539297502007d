package ports

import (
	"context"
	"io"
)

// PhotoStore keeps the intake photos drivers take at pickup. Implementations
// write to object storage and return the key recorded on the order.
type PhotoStore interface {
	// Upload stores the photo and returns its storage key.
	Upload(ctx context.Context, orderID string, contentType string, body io.Reader) (string, error)

	// PresignedURL returns a short-lived download URL for a stored photo.
	PresignedURL(ctx context.Context, key string) (string, error)
}
