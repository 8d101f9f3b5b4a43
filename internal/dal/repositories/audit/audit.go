package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/corray333/swiftserve/internal/service/models/auditlog"
	"golang.org/x/sync/errgroup"
)

const auditTimeout = 30 * time.Second

// publisher is the part of the RabbitMQ client the audit repository needs.
type publisher interface {
	Publish(queue string, body []byte, contentType string) error
}

// AuditRabbitMQRepository publishes order transitions to an audit queue.
type AuditRabbitMQRepository struct {
	client publisher
	queue  string
}

// NewAuditRabbitMQRepository creates a repository publishing to queue.
// The queue must already be declared.
func NewAuditRabbitMQRepository(client publisher, queue string) *AuditRabbitMQRepository {
	return &AuditRabbitMQRepository{
		client: client,
		queue:  queue,
	}
}

// LogTransitions publishes every transition as a JSON message.
func (r *AuditRabbitMQRepository) LogTransitions(ctx context.Context, transitions []auditlog.OrderTransition) error {
	auditCtx, cancel := context.WithTimeout(ctx, auditTimeout)
	defer cancel()
	g, gctx := errgroup.WithContext(auditCtx)
	g.SetLimit(3)

	for _, tr := range transitions {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			data, err := json.Marshal(tr)
			if err != nil {
				return err
			}

			return r.client.Publish(r.queue, data, "application/json")
		})
	}

	return g.Wait()
}
