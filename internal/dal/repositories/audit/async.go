package audit

import (
	"context"
	"log/slog"
	"sync"

	"github.com/corray333/swiftserve/internal/dal/interfaces/iauditrepo"
	"github.com/corray333/swiftserve/internal/service/models/auditlog"
)

// Async hands transitions to a background publisher through a bounded queue.
// LogTransitions never blocks: a batch is dropped when the queue is full.
type Async struct {
	next   iauditrepo.IAuditorRepository
	queue  chan []auditlog.OrderTransition
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// NewAsync starts a publishing goroutine in front of next.
func NewAsync(next iauditrepo.IAuditorRepository, queueSize int) *Async {
	if queueSize <= 0 {
		queueSize = 1
	}

	a := &Async{
		next:  next,
		queue: make(chan []auditlog.OrderTransition, queueSize),
	}

	a.wg.Add(1)
	go a.run()

	return a
}

func (a *Async) LogTransitions(_ context.Context, transitions []auditlog.OrderTransition) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		slog.Warn("Audit batch dropped after shutdown", "count", len(transitions))

		return nil
	}

	select {
	case a.queue <- transitions:
	default:
		slog.Warn("Audit queue is full, dropping transitions", "count", len(transitions))
	}

	return nil
}

// Close stops accepting transitions and waits for queued ones to be published.
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

	for batch := range a.queue {
		// The wrapped repository bounds each publish with its own timeout.
		if err := a.next.LogTransitions(context.Background(), batch); err != nil {
			slog.Error("Failed to publish order transitions", "count", len(batch), "error", err)
		}
	}
}
