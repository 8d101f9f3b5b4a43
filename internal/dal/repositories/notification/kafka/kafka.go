package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/corray333/swiftserve/internal/notify"
)

// producer is the part of the Kafka client the notifier needs.
type producer interface {
	SendMessage(topic, key string, value []byte) error
}

// Notifier writes notifications to a Kafka topic keyed by order id, so every
// notification of one order lands on the same partition in order. Messages
// without an order fall back to the kind as key.
type Notifier struct {
	producer producer
	topic    string
}

// NewNotifier creates a Kafka notifier.
func NewNotifier(producer producer, topic string) *Notifier {
	return &Notifier{
		producer: producer,
		topic:    topic,
	}
}

func (n *Notifier) Notify(_ context.Context, msg notify.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	key := msg.OrderID
	if key == "" {
		key = msg.Kind.String()
	}

	return n.producer.SendMessage(n.topic, key, payload)
}
