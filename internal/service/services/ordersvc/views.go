package ordersvc

import (
	"context"
	"fmt"
	"time"

	"github.com/corray333/swiftserve/internal/service/lifecycle"
	"github.com/corray333/swiftserve/internal/service/models/order"
	"github.com/corray333/swiftserve/internal/service/models/restaurant"
	"github.com/corray333/swiftserve/internal/service/punctuality"
	"github.com/corray333/swiftserve/internal/service/refund"
	"github.com/corray333/swiftserve/internal/service/timing"
	"go.opentelemetry.io/otel"
)

// OrderView is an order together with everything derived from it for display.
type OrderView struct {
	Order       order.Order
	StatusLabel string
	Progress    int
	Alignment   timing.Alignment
	// RefundWindow is the remaining full-refund window, zero once closed.
	RefundWindow time.Duration
	// CookingAt is when the kitchen starts or started cooking.
	CookingAt time.Time
	// LockerCode is set once the meal is waiting for pickup.
	LockerCode string
}

// RestaurantListing is a restaurant with its advisory distance class.
type RestaurantListing struct {
	Restaurant restaurant.Restaurant
	Distance   timing.DistanceClass
}

// GetOrder returns an order by id.
func (s *OrderService) GetOrder(ctx context.Context, id string) (order.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// GetOrderView returns an order with its timing alignment, refund window and progress.
func (s *OrderService) GetOrderView(ctx context.Context, id string) (OrderView, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "OrderService.GetOrderView")
	defer span.End()

	o, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return OrderView{}, err
	}

	view := OrderView{
		Order:        o,
		StatusLabel:  o.Status.Label(),
		Progress:     o.Status.Progress(),
		Alignment:    timing.Align(o.UserEstimatedArrivalTime, o.EstimatedMealReadyTime),
		RefundWindow: refund.WindowRemaining(o, s.clock.Now()),
		CookingAt:    lifecycle.CookingTriggerAt(o),
	}
	if o.Status == order.StatusReadyForPickup {
		view.LockerCode = o.LockerCode()
	}

	return view, nil
}

// ListOrders returns orders in booking order, filtered and paginated by query.
func (s *OrderService) ListOrders(ctx context.Context, query order.QueryOrdersModel) ([]order.Order, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return query.Apply(orders), nil
}

// Punctuality summarises how often arrivals matched meal readiness.
func (s *OrderService) Punctuality(ctx context.Context) (punctuality.Summary, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "OrderService.Punctuality")
	defer span.End()

	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return punctuality.Summary{}, fmt.Errorf("failed to list orders: %w", err)
	}

	return punctuality.Summarize(orders), nil
}

// ListRestaurants returns the catalog with distance classes.
func (s *OrderService) ListRestaurants(ctx context.Context) ([]RestaurantListing, error) {
	restaurants, err := s.restaurantRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}

	listings := make([]RestaurantListing, 0, len(restaurants))
	for _, r := range restaurants {
		listings = append(listings, RestaurantListing{
			Restaurant: r,
			Distance:   timing.ClassifyDistance(r.Distance, r.PrepTime),
		})
	}

	return listings, nil
}

// GetRestaurant returns a restaurant with its distance class.
func (s *OrderService) GetRestaurant(ctx context.Context, id string) (RestaurantListing, error) {
	r, err := s.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		return RestaurantListing{}, err
	}

	return RestaurantListing{
		Restaurant: r,
		Distance:   timing.ClassifyDistance(r.Distance, r.PrepTime),
	}, nil
}
