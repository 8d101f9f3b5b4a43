package audit

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/corray333/swiftserve/internal/service/models/auditlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	mu     sync.Mutex
	bodies map[string][][]byte
	err    error
}

func (f *fakePublisher) Publish(queue string, body []byte, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.bodies == nil {
		f.bodies = make(map[string][][]byte)
	}
	f.bodies[queue] = append(f.bodies[queue], body)

	return nil
}

func TestLogTransitions(t *testing.T) {
	pub := &fakePublisher{}
	repo := NewAuditRabbitMQRepository(pub, "swiftserve.order.transitions")

	transitions := []auditlog.OrderTransition{
		{OrderID: "SW-1", OldStatus: "pending_confirmation", NewStatus: "preparing", Timestamp: time.Now()},
		{OrderID: "SW-2", OldStatus: "preparing", NewStatus: "ready_for_pickup", Timestamp: time.Now()},
		{OrderID: "SW-3", OldStatus: "ready_for_pickup", NewStatus: "picked_up", Timestamp: time.Now()},
		{OrderID: "SW-4", OldStatus: "pending_confirmation", NewStatus: "cancelled_full_refund", Timestamp: time.Now()},
	}
	require.NoError(t, repo.LogTransitions(context.Background(), transitions))

	got := pub.bodies["swiftserve.order.transitions"]
	require.Len(t, got, 4)

	ids := map[string]bool{}
	for _, body := range got {
		var tr auditlog.OrderTransition
		require.NoError(t, json.Unmarshal(body, &tr))
		ids[tr.OrderID] = true
	}
	assert.Len(t, ids, 4)
}

func TestLogTransitionsPropagatesPublishError(t *testing.T) {
	repo := NewAuditRabbitMQRepository(&fakePublisher{err: errors.New("channel closed")}, "q")

	err := repo.LogTransitions(context.Background(), []auditlog.OrderTransition{{OrderID: "SW-1"}})
	assert.ErrorContains(t, err, "channel closed")
}
