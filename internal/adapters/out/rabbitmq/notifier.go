package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"washday/internal/core/domain/model/notification"
	"washday/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const notificationsExchange = "washday.notifications"

// envelope is the wire format consumed by the downstream notification worker.
type envelope struct {
	NotificationID string    `json:"notification_id"`
	OrderID        string    `json:"order_id"`
	Kind           string    `json:"kind"`
	Message        string    `json:"message"`
	QueuedAt       time.Time `json:"queued_at"`
}

type notifier struct {
	conn Connection
}

// NewNotifier creates a notifier that publishes customer notifications to a
// topic exchange. Routing keys are "order.<kind>", so workers can subscribe
// to a single kind or the whole stream.
func NewNotifier(conn Connection) ports.Notifier {
	return &notifier{conn: conn}
}

func (n *notifier) Send(_ context.Context, queued *notification.Notification) error {
	if err := queued.Validate(); err != nil {
		return err
	}

	ch, err := n.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err = ch.ExchangeDeclare(notificationsExchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	body, err := json.Marshal(envelope{
		NotificationID: queued.ID().String(),
		OrderID:        queued.OrderID().String(),
		Kind:           queued.Kind().String(),
		Message:        queued.Message(),
		QueuedAt:       queued.CreatedAt(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	routingKey := "order." + queued.Kind().String()

	err = ch.Publish(notificationsExchange, routingKey, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    queued.ID().String(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}
