package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// sendTimeout bounds a single delivery attempt of the wrapped notifier.
const sendTimeout = 5 * time.Second

// Async decouples callers from a Notifier through a bounded queue.
// Notify never blocks: when the queue is full the notification is dropped.
type Async struct {
	next   Notifier
	queue  chan Message
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// NewAsync starts a delivery goroutine in front of next.
func NewAsync(next Notifier, queueSize int) *Async {
	if queueSize <= 0 {
		queueSize = 1
	}

	a := &Async{
		next:  next,
		queue: make(chan Message, queueSize),
	}

	a.wg.Add(1)
	go a.run()

	return a
}

func (a *Async) Notify(_ context.Context, msg Message) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		slog.Warn("Notification dropped after shutdown", "order_id", msg.OrderID, "kind", msg.Kind)

		return nil
	}

	select {
	case a.queue <- msg:
	default:
		slog.Warn("Notification queue is full, dropping notification", "order_id", msg.OrderID, "kind", msg.Kind)
	}

	return nil
}

// Close stops accepting notifications and waits for queued ones to be delivered.
func (a *Async) Close() {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.queue)
	}
	a.mu.Unlock()

	a.wg.Wait()
}

func (a *Async) run() {
	defer a.wg.Done()

	for msg := range a.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := a.next.Notify(ctx, msg); err != nil {
			slog.Error("Failed to deliver notification", "order_id", msg.OrderID, "kind", msg.Kind, "error", err)
		}
		cancel()
	}
}
