package ordersvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/corray333/swiftserve/internal/notify"
	"github.com/corray333/swiftserve/internal/service/models/auditlog"
	"github.com/corray333/swiftserve/internal/service/models/errs"
	"github.com/corray333/swiftserve/internal/service/models/order"
	"github.com/corray333/swiftserve/internal/service/models/restaurant"
	"github.com/corray333/swiftserve/internal/service/timing"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// BookingRequest is the consumer input for a new order.
type BookingRequest struct {
	RestaurantID             string `validate:"required"`
	UserName                 string `validate:"required"`
	PartySize                int    `validate:"gte=1"`
	MealDetails              string `validate:"required"`
	UserEstimatedArrivalTime int    `validate:"gt=0"`
}

var bookingValidator = validator.New()

// normalized trims the free-text fields, so blank input fails "required".
func (r BookingRequest) normalized() BookingRequest {
	r.RestaurantID = strings.TrimSpace(r.RestaurantID)
	r.UserName = strings.TrimSpace(r.UserName)
	r.MealDetails = strings.TrimSpace(r.MealDetails)

	return r
}

func (r BookingRequest) validate() error {
	err := bookingValidator.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", errs.ErrInvalidInput, err)
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
	}

	return fmt.Errorf("%w: please fill in all fields (%s)", errs.ErrInvalidInput, strings.Join(fields, ", "))
}

// EvaluateBooking checks a travel time against a restaurant's kitchen timeline
// without creating anything.
func (s *OrderService) EvaluateBooking(
	ctx context.Context,
	restaurantID string,
	travelMinutes int,
) (timing.Evaluation, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "OrderService.EvaluateBooking")
	defer span.End()

	r, err := s.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		return timing.Evaluation{}, err
	}

	return timing.EvaluateBooking(r.PrepTime, travelMinutes)
}

// Book creates a PendingConfirmation order. Prep time and meal-ready time are
// snapshotted from the restaurant. A too-early arrival is rejected with
// errs.ErrInvalidInput; a too-late one is booked and the warning is returned
// in the evaluation.
func (s *OrderService) Book(ctx context.Context, req BookingRequest) (order.Order, timing.Evaluation, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "OrderService.Book")
	defer span.End()
	span.SetAttributes(attribute.String("restaurant_id", req.RestaurantID))

	req = req.normalized()
	if err := req.validate(); err != nil {
		return order.Order{}, timing.Evaluation{}, err
	}

	r, err := s.restaurantRepo.GetByID(ctx, req.RestaurantID)
	if err != nil {
		return order.Order{}, timing.Evaluation{}, err
	}

	eval, err := timing.EvaluateBooking(r.PrepTime, req.UserEstimatedArrivalTime)
	if err != nil {
		return order.Order{}, eval, err
	}
	if !eval.CanBook {
		slog.Info("Booking rejected", "restaurant_id", r.ID, "eta_minutes", req.UserEstimatedArrivalTime)
		s.notify(ctx, "", notify.KindActionRejected, eval.Message)

		return order.Order{}, eval, fmt.Errorf("%w: %s", errs.ErrInvalidInput, eval.Message)
	}

	var o order.Order
	err = s.locked(ctx, func() ([]auditlog.OrderTransition, error) {
		created, err := s.create(ctx, r, req, eval)
		if err != nil {
			return nil, err
		}
		o = created

		return []auditlog.OrderTransition{{
			OrderID:      o.ID,
			RestaurantID: o.RestaurantID,
			NewStatus:    o.Status.String(),
			ChangedBy:    changedByConsumer,
			Timestamp:    o.BookingTime,
		}}, nil
	})
	if err != nil {
		return order.Order{}, eval, err
	}

	return o, eval, nil
}

// create stores a new order and announces it. The caller holds mu.
func (s *OrderService) create(
	ctx context.Context,
	r restaurant.Restaurant,
	req BookingRequest,
	eval timing.Evaluation,
) (order.Order, error) {
	o := order.Order{
		ID:                       s.newID(),
		RestaurantID:             r.ID,
		RestaurantName:           r.Name,
		UserName:                 req.UserName,
		PartySize:                req.PartySize,
		MealDetails:              req.MealDetails,
		UserEstimatedArrivalTime: req.UserEstimatedArrivalTime,
		PrepTime:                 r.PrepTime,
		BookingTime:              s.clock.Now(),
		EstimatedMealReadyTime:   eval.MealReadyTime,
		Status:                   order.StatusPendingConfirmation,
	}

	if err := s.orderRepo.Create(ctx, o); err != nil {
		return order.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	slog.Info("Order booked",
		"order_id", o.ID,
		"restaurant_id", o.RestaurantID,
		"eta_minutes", o.UserEstimatedArrivalTime,
		"verdict", eval.Verdict)

	s.notify(ctx, o.ID, notify.KindBookingSubmitted, fmt.Sprintf(
		"Your booking for %s is being processed. Order ID: %s", o.RestaurantName, o.ID,
	))

	return o, nil
}
