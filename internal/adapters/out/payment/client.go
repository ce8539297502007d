// Package payment captures final charges through the payment provider's
// HTTP API.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/ports"
)

// Client implements ports.PaymentClient against the provider's capture
// endpoint. Safe for concurrent use.
type Client struct {
	session *http.Client
	baseURL string
	apiKey  string
}

// NewClient creates a payment client for the given provider base URL.
func NewClient(baseURL, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("payment base URL is empty")
	}
	if apiKey == "" {
		return nil, errors.New("payment api key is empty")
	}

	return &Client{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
	}, nil
}

var _ ports.PaymentClient = (*Client)(nil)

type captureRequest struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount_cents"`
	Currency string `json:"currency"`
}

type captureResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Capture charges the amount for the order. Provider declines and transport
// failures both come back wrapping ports.ErrPaymentFailed, so the caller can
// roll back the delivered transition without inspecting the cause.
func (c *Client) Capture(ctx context.Context, orderID kernel.UUID, amount kernel.Money) error {
	payload, err := json.Marshal(captureRequest{
		OrderID:  orderID.String(),
		Amount:   amount.Cents(),
		Currency: amount.Currency(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal capture request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/captures", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build capture request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	// Order ID doubles as the idempotency key: retrying a delivered
	// transition must not charge twice.
	req.Header.Set("Idempotency-Key", orderID.String())

	resp, err := c.session.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ports.ErrPaymentFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Errorf("%w: reading response: %w", ports.ErrPaymentFailed, err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("%w: provider returned %d", ports.ErrPaymentFailed, resp.StatusCode)
	}

	var parsed captureResponse
	if err = json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("%w: decoding response: %w", ports.ErrPaymentFailed, err)
	}
	if parsed.Status != "captured" {
		return fmt.Errorf("%w: %s", ports.ErrPaymentFailed, parsed.Message)
	}

	return nil
}
