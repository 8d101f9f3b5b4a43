package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/swiftserve/internal/dal/postgres"
	"github.com/corray333/swiftserve/internal/service/models/outbox"
	"github.com/jackc/pgx/v5"
)

const table = "notification_outbox"

var columns = []string{
	"id",
	"order_id",
	"kind",
	"queue",
	"payload",
	"attempts",
	"max_attempts",
	"last_error",
	"created_at",
	"next_attempt_at",
}

// NotificationOutbox stores undelivered notifications in PostgreSQL.
type NotificationOutbox struct {
	client *postgres.Client
	now    func() time.Time
}

// NewNotificationOutbox creates a new notification outbox.
func NewNotificationOutbox(client *postgres.Client) *NotificationOutbox {
	return &NotificationOutbox{
		client: client,
		now:    time.Now,
	}
}

func (r *NotificationOutbox) Park(ctx context.Context, n outbox.Notification) error {
	query, args, err := parkQuery(n)
	if err != nil {
		return fmt.Errorf("failed to build park query: %w", err)
	}

	if _, err := r.client.Pool().Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to park notification for order %s: %w", n.OrderID, err)
	}

	return nil
}

// Lease pushes next_attempt_at of the claimed rows past the lease, so a
// concurrent worker neither blocks on nor re-reads them.
func (r *NotificationOutbox) Lease(
	ctx context.Context,
	limit int,
	leaseFor time.Duration,
) ([]outbox.Notification, error) {
	now := r.now()

	query, args, err := leaseQuery(limit, now, now.Add(leaseFor))
	if err != nil {
		return nil, fmt.Errorf("failed to build lease query: %w", err)
	}

	rows, err := r.client.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to lease notifications: %w", err)
	}

	leased, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (outbox.Notification, error) {
		var n outbox.Notification
		err := row.Scan(
			&n.ID,
			&n.OrderID,
			&n.Kind,
			&n.Queue,
			&n.Payload,
			&n.Attempts,
			&n.MaxAttempts,
			&n.LastError,
			&n.CreatedAt,
			&n.NextAttemptAt,
		)

		return n, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan leased notifications: %w", err)
	}

	return leased, nil
}

func (r *NotificationOutbox) Delete(ctx context.Context, id int64) error {
	query, args, err := sq.Delete(table).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.client.Pool().Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete notification %d: %w", id, err)
	}

	return nil
}

func (r *NotificationOutbox) Reschedule(
	ctx context.Context,
	id int64,
	attempts int,
	lastError string,
	nextAttemptAt time.Time,
) error {
	query, args, err := sq.Update(table).
		Set("attempts", attempts).
		Set("last_error", lastError).
		Set("next_attempt_at", nextAttemptAt).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build reschedule query: %w", err)
	}

	if _, err := r.client.Pool().Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to reschedule notification %d: %w", id, err)
	}

	return nil
}

func parkQuery(n outbox.Notification) (string, []any, error) {
	return sq.Insert(table).
		Columns(columns[1:]...).
		Values(
			n.OrderID,
			n.Kind,
			n.Queue,
			n.Payload,
			n.Attempts,
			n.MaxAttempts,
			n.LastError,
			n.CreatedAt,
			n.NextAttemptAt,
		).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

func leaseQuery(limit int, now, leaseUntil time.Time) (string, []any, error) {
	due, dueArgs, err := sq.Select("id").
		From(table).
		Where(sq.LtOrEq{"next_attempt_at": now}).
		Where(sq.Or{sq.Eq{"max_attempts": 0}, sq.Expr("attempts < max_attempts")}).
		OrderBy("next_attempt_at ASC").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED").
		ToSql()
	if err != nil {
		return "", nil, err
	}

	return sq.Update(table).
		Set("next_attempt_at", leaseUntil).
		Where(sq.Expr("id IN ("+due+")", dueArgs...)).
		Suffix("RETURNING "+strings.Join(columns, ", ")).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

