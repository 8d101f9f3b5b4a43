// Package notify delivers one-way consumer notifications about order progress.
package notify

import (
	"context"
	"log/slog"
)

// Kind identifies what a notification is about.
type Kind string

const (
	KindBookingSubmitted Kind = "booking_submitted"
	KindCookingStarted   Kind = "cooking_started"
	KindReadyForPickup   Kind = "ready_for_pickup"
	KindOrderCancelled   Kind = "order_cancelled"
	KindActionRejected   Kind = "action_rejected"
)

func (k Kind) String() string {
	return string(k)
}

// Notifier sends a notification. Implementations may fail; callers never roll back on failure.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// Message is a notification and its wire form. OrderID is empty for
// rejections that happen before an order exists.
type Message struct {
	OrderID string `json:"orderId,omitempty"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier creates a LogNotifier. A nil logger means slog.Default().
func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.Default()
	}

	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, msg Message) error {
	n.log.InfoContext(ctx, "Notification", "order_id", msg.OrderID, "kind", msg.Kind, "message", msg.Message)

	return nil
}
