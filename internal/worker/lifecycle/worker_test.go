package lifecycle

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

type countingTicker struct {
	calls atomic.Int32
	err   error
}

func (c *countingTicker) Tick(context.Context) (int, error) {
	c.calls.Add(1)

	return 0, c.err
}

func TestWorkerTicksUntilCancelled(t *testing.T) {
	viper.Set("lifecycle.tick_interval", 5*time.Millisecond)
	t.Cleanup(func() { viper.Set("lifecycle.tick_interval", nil) })

	svc := &countingTicker{err: errors.New("store unavailable")}
	w := NewWorker(svc)
	assert.Equal(t, 5*time.Millisecond, w.interval)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return svc.calls.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestNewWorkerDefaultsInterval(t *testing.T) {
	w := NewWorker(&countingTicker{})
	assert.Equal(t, time.Second, w.interval)
}
