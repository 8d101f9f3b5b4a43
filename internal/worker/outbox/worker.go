package outbox

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/corray333/swiftserve/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/swiftserve/internal/service/models/outbox"
	"github.com/spf13/viper"
)

// publisher is the part of the RabbitMQ client the relay needs.
type publisher interface {
	Publish(queue string, body []byte, contentType string) error
}

const contentType = "application/json"

// Worker relays parked notifications from the outbox table to RabbitMQ.
type Worker struct {
	outboxRepo    ioutboxrepo.IOutboxRepository
	client        publisher
	pollInterval  time.Duration
	batchSize     int
	retryInterval time.Duration
	leaseFor      time.Duration
	now           func() time.Time
	stopCh        chan struct{}
}

// NewWorker creates a new outbox worker configured from outbox.* keys.
func NewWorker(outboxRepo ioutboxrepo.IOutboxRepository, client publisher) *Worker {
	pollInterval := viper.GetDuration("outbox.poll_interval")
	if pollInterval <= 0 {
		pollInterval = 10 * time.Second
	}

	batchSize := viper.GetInt("outbox.batch_size")
	if batchSize <= 0 {
		batchSize = 100
	}

	retryInterval := viper.GetDuration("outbox.retry_interval")
	if retryInterval <= 0 {
		retryInterval = 30 * time.Second
	}

	leaseFor := viper.GetDuration("outbox.lease_duration")
	if leaseFor <= 0 {
		leaseFor = time.Minute
	}

	return &Worker{
		outboxRepo:    outboxRepo,
		client:        client,
		pollInterval:  pollInterval,
		batchSize:     batchSize,
		retryInterval: retryInterval,
		leaseFor:      leaseFor,
		now:           time.Now,
		stopCh:        make(chan struct{}),
	}
}

// Start begins processing messages from the outbox. It blocks until ctx is done
// or Stop is called.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	slog.Info("Outbox worker started", "poll_interval", w.pollInterval, "batch_size", w.batchSize)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Outbox worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Outbox worker stopped")

			return
		case <-ticker.C:
			w.processMessages(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

// processMessages leases a batch of due notifications and relays them.
func (w *Worker) processMessages(ctx context.Context) {
	leased, err := w.outboxRepo.Lease(ctx, w.batchSize, w.leaseFor)
	if err != nil {
		slog.Error("Failed to lease notifications from outbox", "error", err)

		return
	}

	if len(leased) == 0 {
		return
	}

	slog.Info("Relaying parked notifications", "count", len(leased))

	for _, n := range leased {
		w.relay(ctx, n)
	}
}

func (w *Worker) relay(ctx context.Context, n outbox.Notification) {
	log := slog.With("outbox_id", n.ID, "order_id", n.OrderID, "kind", n.Kind)

	err := w.client.Publish(n.Queue, n.Payload, contentType)
	if err == nil {
		if err := w.outboxRepo.Delete(ctx, n.ID); err != nil {
			log.Error("Failed to delete relayed notification from outbox", "error", err)

			return
		}
		log.Info("Parked notification relayed")

		return
	}

	attempts := n.Attempts + 1
	if n.Exhausted(attempts) {
		log.Error("Dropping notification after exhausting attempts", "attempts", attempts, "error", err)
		if err := w.outboxRepo.Delete(ctx, n.ID); err != nil {
			log.Error("Failed to delete exhausted notification", "error", err)
		}

		return
	}

	// retryInterval, 2x, 4x, ...
	backoff := time.Duration(math.Pow(2, float64(attempts-1)) * float64(w.retryInterval))
	next := w.now().Add(backoff)

	log.Warn("Failed to relay notification, will retry", "attempts", attempts, "next_attempt", next, "error", err)

	if err := w.outboxRepo.Reschedule(ctx, n.ID, attempts, err.Error(), next); err != nil {
		log.Error("Failed to reschedule notification", "error", err)
	}
}
