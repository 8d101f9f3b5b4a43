package irestaurantrepo

import (
	"context"

	"github.com/corray333/swiftserve/internal/service/models/restaurant"
)

// IRestaurantRepository is the read-only restaurant lookup.
type IRestaurantRepository interface {
	GetByID(ctx context.Context, id string) (restaurant.Restaurant, error)
	List(ctx context.Context) ([]restaurant.Restaurant, error)
}
