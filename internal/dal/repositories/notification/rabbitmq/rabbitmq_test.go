package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/corray333/swiftserve/internal/notify"
	"github.com/corray333/swiftserve/internal/service/models/outbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	queue string
	body  []byte
	err   error
}

func (f *fakePublisher) Publish(queue string, body []byte, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.queue, f.body = queue, body

	return nil
}

type fakeOutbox struct {
	parked []outbox.Notification
	err    error
}

func (f *fakeOutbox) Park(_ context.Context, n outbox.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.parked = append(f.parked, n)

	return nil
}

func (f *fakeOutbox) Lease(context.Context, int, time.Duration) ([]outbox.Notification, error) {
	return nil, nil
}

func (f *fakeOutbox) Delete(context.Context, int64) error { return nil }

func (f *fakeOutbox) Reschedule(context.Context, int64, int, string, time.Time) error { return nil }

func TestNotifyPublishes(t *testing.T) {
	pub := &fakePublisher{}
	n := NewNotifier(pub, "swiftserve.notifications", nil, 5)

	require.NoError(t, n.Notify(context.Background(), notify.Message{
		OrderID: "SW-42",
		Kind:    notify.KindCookingStarted,
		Message: "Kitchen has started preparing your meal!",
	}))
	assert.Equal(t, "swiftserve.notifications", pub.queue)

	var msg notify.Message
	require.NoError(t, json.Unmarshal(pub.body, &msg))
	assert.Equal(t, notify.KindCookingStarted, msg.Kind)
	assert.Equal(t, "SW-42", msg.OrderID)
}

func TestNotifyFallsBackToOutbox(t *testing.T) {
	box := &fakeOutbox{}
	n := NewNotifier(&fakePublisher{err: errors.New("connection reset")}, "q", box, 7)

	require.NoError(t, n.Notify(context.Background(), notify.Message{
		OrderID: "SW-7",
		Kind:    notify.KindReadyForPickup,
		Message: "ready",
	}))
	require.Len(t, box.parked, 1)
	assert.Equal(t, "q", box.parked[0].Queue)
	assert.Equal(t, "SW-7", box.parked[0].OrderID)
	assert.Equal(t, "ready_for_pickup", box.parked[0].Kind)
	assert.Equal(t, 7, box.parked[0].MaxAttempts)
	assert.Equal(t, "connection reset", box.parked[0].LastError)
}

func TestNotifyReportsFailureWithoutOutbox(t *testing.T) {
	n := NewNotifier(&fakePublisher{err: errors.New("down")}, "q", nil, 5)
	assert.Error(t, n.Notify(context.Background(), notify.Message{Kind: notify.KindActionRejected, Message: "no"}))

	failing := NewNotifier(&fakePublisher{err: errors.New("down")}, "q", &fakeOutbox{err: errors.New("db down")}, 5)
	assert.ErrorContains(t, failing.Notify(context.Background(), notify.Message{Kind: notify.KindActionRejected, Message: "no"}), "outbox")
}
