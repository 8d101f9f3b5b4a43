package ordersvc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/corray333/swiftserve/internal/notify"
	"github.com/corray333/swiftserve/internal/service/lifecycle"
	"github.com/corray333/swiftserve/internal/service/models/auditlog"
	"github.com/corray333/swiftserve/internal/service/models/order"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const (
	changedByConsumer = "consumer"
	changedByKitchen  = "kitchen"
	changedByTimer    = "lifecycle"
)

// Tick evaluates every non-terminal order once against the clock and applies
// the due transitions. It returns how many orders changed. A failure on one order
// is logged and does not stop the pass.
func (s *OrderService) Tick(ctx context.Context) (int, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "OrderService.Tick")
	defer span.End()

	var changed int
	err := s.locked(ctx, func() ([]auditlog.OrderTransition, error) {
		orders, err := s.orderRepo.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list orders: %w", err)
		}

		now := s.clock.Now()
		var applied []auditlog.OrderTransition
		for _, o := range orders {
			if o.Status.IsTerminal() {
				continue
			}

			tr, ok := lifecycle.Evaluate(o, now)
			if !ok {
				continue
			}

			rec, err := s.apply(ctx, o, tr, changedByTimer)
			if err != nil {
				slog.Error("Failed to apply transition", "order_id", o.ID, "to", tr.To, "error", err)

				continue
			}
			applied = append(applied, rec)
		}
		changed = len(applied)

		return applied, nil
	})
	if err != nil {
		return 0, err
	}

	span.SetAttributes(attribute.Int("applied", changed))

	return changed, nil
}

// EvaluateOrder runs one lifecycle evaluation for a single order and reports
// whether it changed.
func (s *OrderService) EvaluateOrder(ctx context.Context, id string) (order.Order, bool, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "OrderService.EvaluateOrder")
	defer span.End()

	var (
		out     order.Order
		changed bool
	)
	err := s.locked(ctx, func() ([]auditlog.OrderTransition, error) {
		o, err := s.orderRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = o

		tr, ok := lifecycle.Evaluate(o, s.clock.Now())
		if !ok {
			return nil, nil
		}

		rec, err := s.apply(ctx, o, tr, changedByTimer)
		if err != nil {
			return nil, err
		}
		out, changed = lifecycle.Apply(o, tr), true

		return []auditlog.OrderTransition{rec}, nil
	})

	return out, changed, err
}

// Cancel cancels an order and returns it with the resolved refund tier.
func (s *OrderService) Cancel(ctx context.Context, id string) (order.Order, order.RefundTier, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "OrderService.Cancel")
	defer span.End()

	var (
		out  order.Order
		tier order.RefundTier
	)
	err := s.locked(ctx, func() ([]auditlog.OrderTransition, error) {
		o, err := s.orderRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = o

		tr, err := lifecycle.Cancel(o, s.clock.Now())
		if err != nil {
			s.reject(ctx, o, "Cannot cancel order at this stage.", err)

			return nil, err
		}

		rec, err := s.apply(ctx, o, tr, changedByConsumer)
		if err != nil {
			return nil, err
		}
		out, tier = lifecycle.Apply(o, tr), tr.Refund

		return []auditlog.OrderTransition{rec}, nil
	})

	return out, tier, err
}

// PickUp hands a ready order over to the consumer.
func (s *OrderService) PickUp(ctx context.Context, id string) (order.Order, error) {
	return s.request(ctx, "OrderService.PickUp", id, changedByConsumer, lifecycle.PickUp,
		"Your order is not ready for pickup yet.")
}

// StartCooking starts cooking ahead of the timer.
func (s *OrderService) StartCooking(ctx context.Context, id string) (order.Order, error) {
	return s.request(ctx, "OrderService.StartCooking", id, changedByKitchen, lifecycle.StartCooking,
		"Cooking cannot be started for this order.")
}

func (s *OrderService) request(
	ctx context.Context,
	spanName, id, changedBy string,
	decide func(order.Order) (lifecycle.Transition, error),
	rejection string,
) (order.Order, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, spanName)
	defer span.End()

	var out order.Order
	err := s.locked(ctx, func() ([]auditlog.OrderTransition, error) {
		o, err := s.orderRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = o

		tr, err := decide(o)
		if err != nil {
			s.reject(ctx, o, rejection, err)

			return nil, err
		}

		rec, err := s.apply(ctx, o, tr, changedBy)
		if err != nil {
			return nil, err
		}
		out = lifecycle.Apply(o, tr)

		return []auditlog.OrderTransition{rec}, nil
	})

	return out, err
}

// apply persists tr and emits its notification. The caller holds mu.
func (s *OrderService) apply(
	ctx context.Context,
	o order.Order,
	tr lifecycle.Transition,
	changedBy string,
) (auditlog.OrderTransition, error) {
	var cooking *bool
	if tr.TriggerCooking {
		triggered := true
		cooking = &triggered
	}

	if err := s.orderRepo.UpdateStatus(ctx, o.ID, tr.To, cooking); err != nil {
		return auditlog.OrderTransition{}, fmt.Errorf("failed to update order status: %w", err)
	}

	slog.Info("Order status changed",
		"order_id", o.ID,
		"from", tr.From,
		"to", tr.To,
		"changed_by", changedBy)

	if kind, message, ok := transitionNotice(tr); ok {
		s.notify(ctx, o.ID, kind, message)
	}

	return auditlog.OrderTransition{
		OrderID:          o.ID,
		RestaurantID:     o.RestaurantID,
		OldStatus:        tr.From.String(),
		NewStatus:        tr.To.String(),
		CookingTriggered: o.CookingTriggered || tr.TriggerCooking,
		ChangedBy:        changedBy,
		Timestamp:        s.clock.Now(),
	}, nil
}

func (s *OrderService) reject(ctx context.Context, o order.Order, message string, err error) {
	slog.Info("Order action rejected", "order_id", o.ID, "status", o.Status, "reason", err)
	s.notify(ctx, o.ID, notify.KindActionRejected, message)
}

func transitionNotice(tr lifecycle.Transition) (notify.Kind, string, bool) {
	switch tr.To {
	case order.StatusPreparing:
		return notify.KindCookingStarted, "Kitchen has started preparing your meal!", true
	case order.StatusReadyForPickup:
		return notify.KindReadyForPickup, "Your meal is ready for pickup.", true
	case order.StatusPickedUp:
		return "", "", false
	}

	switch tr.Refund {
	case order.RefundFull:
		return notify.KindOrderCancelled, "Your order has been cancelled with a full refund.", true
	case order.RefundPartial:
		return notify.KindOrderCancelled,
			"Your order has been cancelled. A partial refund will be processed as meal prep had begun.", true
	case order.RefundNone:
		return notify.KindOrderCancelled,
			"Your order has been cancelled. The full refund window has passed, so no refund will be issued.", true
	}

	return "", "", false
}
