package outbox

import (
	"time"
)

// Notification is a consumer notification that could not be published to
// RabbitMQ and is parked in Postgres until the outbox worker delivers it.
type Notification struct {
	ID            int64
	OrderID       string
	Kind          string
	Queue         string
	Payload       []byte
	Attempts      int
	MaxAttempts   int
	LastError     string
	CreatedAt     time.Time
	NextAttemptAt time.Time
}

// Exhausted reports whether one more failed attempt uses up the budget.
// A zero budget retries forever.
func (n Notification) Exhausted(attempts int) bool {
	return n.MaxAttempts > 0 && attempts >= n.MaxAttempts
}
