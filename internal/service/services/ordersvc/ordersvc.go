package ordersvc

import (
	"context"
	"log/slog"
	"sync"

	"github.com/corray333/swiftserve/internal/clock"
	"github.com/corray333/swiftserve/internal/dal/interfaces/iauditrepo"
	"github.com/corray333/swiftserve/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/swiftserve/internal/dal/interfaces/irestaurantrepo"
	"github.com/corray333/swiftserve/internal/notify"
	"github.com/corray333/swiftserve/internal/service/models/auditlog"
	"github.com/google/uuid"
)

const tracerName = "ordersvc"

// OrderService books orders and drives them through their lifecycle.
//
// Every read-decide-write pass holds mu, so the lifecycle tick and consumer
// actions never interleave on the same order. Audit records are published only
// after mu is released.
type OrderService struct {
	mu sync.Mutex

	orderRepo      iorderrepo.IOrderRepository
	restaurantRepo irestaurantrepo.IRestaurantRepository
	auditRepo      iauditrepo.IAuditorRepository
	notifier       notify.Notifier
	clock          clock.Clock
	newID          func() string
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService. It panics when a required
// repository is missing.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		notifier: notify.NewLogNotifier(nil),
		clock:    clock.Real{},
		newID:    newOrderID,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.orderRepo == nil {
		panic("ordersvc: order repository is required")
	}
	if s.restaurantRepo == nil {
		panic("ordersvc: restaurant repository is required")
	}

	return s
}

// WithOrderRepository sets the order record store.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(repo iorderrepo.IOrderRepository) option {
	return func(s *OrderService) {
		s.orderRepo = repo
	}
}

// WithRestaurantRepository sets the restaurant lookup.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithRestaurantRepository(repo irestaurantrepo.IRestaurantRepository) option {
	return func(s *OrderService) {
		s.restaurantRepo = repo
	}
}

// WithAuditRepository enables publishing of applied transitions.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAuditRepository(repo iauditrepo.IAuditorRepository) option {
	return func(s *OrderService) {
		s.auditRepo = repo
	}
}

// WithNotifier sets the notification sink.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithNotifier(n notify.Notifier) option {
	return func(s *OrderService) {
		s.notifier = n
	}
}

// WithClock sets the time source.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithClock(c clock.Clock) option {
	return func(s *OrderService) {
		s.clock = c
	}
}

// WithIDGenerator overrides order id generation.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithIDGenerator(gen func() string) option {
	return func(s *OrderService) {
		s.newID = gen
	}
}

func newOrderID() string {
	return "SW-" + uuid.NewString()
}

func (s *OrderService) notify(ctx context.Context, orderID string, kind notify.Kind, message string) {
	msg := notify.Message{OrderID: orderID, Kind: kind, Message: message}
	if err := s.notifier.Notify(ctx, msg); err != nil {
		slog.Warn("Failed to send notification", "order_id", orderID, "kind", kind, "error", err)
	}
}

// locked runs fn under mu, then publishes the transitions it applied.
func (s *OrderService) locked(ctx context.Context, fn func() ([]auditlog.OrderTransition, error)) error {
	applied, err := func() ([]auditlog.OrderTransition, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		return fn()
	}()
	s.audit(ctx, applied)

	return err
}

func (s *OrderService) audit(ctx context.Context, transitions []auditlog.OrderTransition) {
	if s.auditRepo == nil || len(transitions) == 0 {
		return
	}

	if err := s.auditRepo.LogTransitions(ctx, transitions); err != nil {
		slog.Error("Failed to publish order transitions", "count", len(transitions), "error", err)
	}
}
