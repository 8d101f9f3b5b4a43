package ioutboxrepo

import (
	"context"
	"time"

	"github.com/corray333/swiftserve/internal/service/models/outbox"
)

// IOutboxRepository parks undelivered notifications for the outbox worker.
type IOutboxRepository interface {
	// Park stores a notification that failed to publish.
	Park(ctx context.Context, n outbox.Notification) error

	// Lease claims up to limit due notifications and hides them from other
	// workers until leaseFor has passed.
	Lease(ctx context.Context, limit int, leaseFor time.Duration) ([]outbox.Notification, error)

	// Delete removes a delivered or exhausted notification.
	Delete(ctx context.Context, id int64) error

	// Reschedule records a failed attempt and when to try again.
	Reschedule(ctx context.Context, id int64, attempts int, lastError string, nextAttemptAt time.Time) error
}
