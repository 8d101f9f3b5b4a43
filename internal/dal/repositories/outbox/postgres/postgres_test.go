package postgres

import (
	"testing"
	"time"

	"github.com/corray333/swiftserve/internal/service/models/outbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaseQuerySkipsLockedRows(t *testing.T) {
	now := time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)
	until := now.Add(time.Minute)

	query, args, err := leaseQuery(25, now, until)
	require.NoError(t, err)

	assert.Contains(t, query, "UPDATE notification_outbox SET next_attempt_at = $1")
	assert.Contains(t, query, "WHERE id IN (SELECT id FROM notification_outbox WHERE next_attempt_at <= $2")
	assert.Contains(t, query, "LIMIT 25 FOR UPDATE SKIP LOCKED)")
	assert.Contains(t, query, "RETURNING id, order_id, kind, queue, payload")
	assert.NotContains(t, query, "?")
	assert.Equal(t, []any{until, now, 0}, args)
}

func TestParkQueryStoresOrderAndKind(t *testing.T) {
	created := time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)

	query, args, err := parkQuery(outbox.Notification{
		OrderID:       "SW-1",
		Kind:          "ready_for_pickup",
		Queue:         "swiftserve.notifications",
		Payload:       []byte(`{}`),
		MaxAttempts:   5,
		CreatedAt:     created,
		NextAttemptAt: created,
	})
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO notification_outbox (order_id,kind,queue,payload")
	require.Len(t, args, 9)
	assert.Equal(t, "SW-1", args[0])
	assert.Equal(t, "ready_for_pickup", args[1])
	assert.Equal(t, 5, args[5])
}
