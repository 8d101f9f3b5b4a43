package order

import (
	"time"
)

// MealReadyBuffer is the fixed margin added to the kitchen prep time, in minutes.
const MealReadyBuffer = 5

// Order represents a consumer's booking against a restaurant's preparation timeline.
//
// PrepTime, EstimatedMealReadyTime and BookingTime are snapshots taken at booking time
// and never change afterwards. Only Status and CookingTriggered are mutable.
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
	Status                   Status    `json:"status"`
	CookingTriggered         bool      `json:"cookingTriggered"`
}

// ArrivalAt returns the instant the consumer declared they would arrive.
func (o Order) ArrivalAt() time.Time {
	return o.BookingTime.Add(time.Duration(o.UserEstimatedArrivalTime) * time.Minute)
}

// MealReadyAt returns the instant the meal is estimated to be ready.
func (o Order) MealReadyAt() time.Time {
	return o.BookingTime.Add(time.Duration(o.EstimatedMealReadyTime) * time.Minute)
}

// LockerCode returns the meal locker code used when the consumer is late for pickup.
func (o Order) LockerCode() string {
	if len(o.ID) <= 4 {
		return "M" + o.ID
	}

	return "M" + o.ID[len(o.ID)-4:]
}
