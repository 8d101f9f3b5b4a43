package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/swiftserve/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/swiftserve/internal/notify"
	"github.com/corray333/swiftserve/internal/service/models/outbox"
)

const contentType = "application/json"

// publisher is the part of the RabbitMQ client the notifier needs.
type publisher interface {
	Publish(queue string, body []byte, contentType string) error
}

// Notifier publishes notifications to a RabbitMQ queue. Messages that cannot be
// published are parked in the outbox for the outbox worker to retry.
type Notifier struct {
	client     publisher
	queue      string
	outboxRepo ioutboxrepo.IOutboxRepository
	maxRetries int
}

// NewNotifier creates a notifier. outboxRepo may be nil, in which case failed
// messages are reported to the caller and lost.
func NewNotifier(
	client publisher,
	queue string,
	outboxRepo ioutboxrepo.IOutboxRepository,
	maxRetries int,
) *Notifier {
	return &Notifier{
		client:     client,
		queue:      queue,
		outboxRepo: outboxRepo,
		maxRetries: maxRetries,
	}
}

func (n *Notifier) Notify(ctx context.Context, msg notify.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	pubErr := n.client.Publish(n.queue, payload, contentType)
	if pubErr == nil {
		return nil
	}
	if n.outboxRepo == nil {
		return fmt.Errorf("failed to publish notification: %w", pubErr)
	}

	slog.Warn("Failed to publish notification, parking it in outbox",
		"order_id", msg.OrderID,
		"kind", msg.Kind,
		"error", pubErr)

	now := time.Now()
	err = n.outboxRepo.Park(ctx, outbox.Notification{
		OrderID:       msg.OrderID,
		Kind:          msg.Kind.String(),
		Queue:         n.queue,
		Payload:       payload,
		MaxAttempts:   n.maxRetries,
		LastError:     pubErr.Error(),
		CreatedAt:     now,
		NextAttemptAt: now,
	})
	if err != nil {
		return fmt.Errorf("failed to save notification to outbox: %w", err)
	}

	return nil
}
