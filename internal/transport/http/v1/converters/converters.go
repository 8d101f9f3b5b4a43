// Package converters maps service models to the JSON shapes of the v1 API.
package converters

import (
	"time"

	"github.com/corray333/swiftserve/internal/service/models/order"
	"github.com/corray333/swiftserve/internal/service/services/ordersvc"
	"github.com/corray333/swiftserve/internal/service/timing"
)

// Order is the v1 representation of an order.
type Order struct {
	ID                       string    `json:"id"`
	RestaurantID             string    `json:"restaurantId"`
	RestaurantName           string    `json:"restaurantName"`
	UserName                 string    `json:"userName"`
	PartySize                int       `json:"partySize"`
	MealDetails              string    `json:"mealDetails"`
	UserEstimatedArrivalTime int       `json:"userEstimatedArrivalTime"`
	PrepTime                 int       `json:"prepTime"`
	BookingTime              time.Time `json:"bookingTime"`
	EstimatedMealReadyTime   int       `json:"estimatedMealReadyTime"`
	Status                   string    `json:"status"`
	StatusLabel              string    `json:"statusLabel"`
	CookingTriggered         bool      `json:"cookingTriggered"`
}

// OrderView is an order with its display details.
type OrderView struct {
	Order
	Progress            int              `json:"progress"`
	Alignment           timing.Alignment `json:"alignment"`
	RefundWindowSeconds int              `json:"refundWindowSeconds"`
	CookingAt           time.Time        `json:"cookingAt"`
	LockerCode          string           `json:"lockerCode,omitempty"`
}

// OrderToResponse converts an order model.
func OrderToResponse(o order.Order) Order {
	return Order{
		ID:                       o.ID,
		RestaurantID:             o.RestaurantID,
		RestaurantName:           o.RestaurantName,
		UserName:                 o.UserName,
		PartySize:                o.PartySize,
		MealDetails:              o.MealDetails,
		UserEstimatedArrivalTime: o.UserEstimatedArrivalTime,
		PrepTime:                 o.PrepTime,
		BookingTime:              o.BookingTime,
		EstimatedMealReadyTime:   o.EstimatedMealReadyTime,
		Status:                   o.Status.String(),
		StatusLabel:              o.Status.Label(),
		CookingTriggered:         o.CookingTriggered,
	}
}

// OrdersToResponse converts a list of order models.
func OrdersToResponse(orders []order.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderToResponse(o))
	}

	return result
}

// OrderViewToResponse converts an order view.
func OrderViewToResponse(v ordersvc.OrderView) OrderView {
	return OrderView{
		Order:               OrderToResponse(v.Order),
		Progress:            v.Progress,
		Alignment:           v.Alignment,
		RefundWindowSeconds: int(v.RefundWindow.Seconds()),
		CookingAt:           v.CookingAt,
		LockerCode:          v.LockerCode,
	}
}
