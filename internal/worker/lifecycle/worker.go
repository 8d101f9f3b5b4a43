// Package lifecycle runs the periodic order lifecycle evaluation.
package lifecycle

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

// ticker is the service evaluated on every pass.
type ticker interface {
	Tick(ctx context.Context) (int, error)
}

// Worker calls Tick on a fixed interval. A pass always finishes before the
// next one starts.
type Worker struct {
	service  ticker
	interval time.Duration
	stopCh   chan struct{}
}

// NewWorker creates a lifecycle worker using lifecycle.tick_interval.
func NewWorker(service ticker) *Worker {
	interval := viper.GetDuration("lifecycle.tick_interval")
	if interval <= 0 {
		interval = time.Second
	}

	return &Worker{
		service:  service,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start runs passes until ctx is done or Stop is called.
func (w *Worker) Start(ctx context.Context) {
	t := time.NewTicker(w.interval)
	defer t.Stop()

	slog.Info("Lifecycle worker started", "interval", w.interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Lifecycle worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Lifecycle worker stopped")

			return
		case <-t.C:
			w.pass(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

func (w *Worker) pass(ctx context.Context) {
	applied, err := w.service.Tick(ctx)
	if err != nil {
		slog.Error("Lifecycle pass failed", "error", err)

		return
	}
	if applied > 0 {
		slog.Debug("Lifecycle pass applied transitions", "count", applied)
	}
}
