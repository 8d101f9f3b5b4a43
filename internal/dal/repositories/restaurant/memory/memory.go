package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/corray333/swiftserve/internal/service/models/errs"
	"github.com/corray333/swiftserve/internal/service/models/restaurant"
)

// RestaurantRepository serves a fixed restaurant catalog from memory.
type RestaurantRepository struct {
	restaurants []restaurant.Restaurant
}

// NewRestaurantRepository creates a repository over the given catalog.
func NewRestaurantRepository(restaurants []restaurant.Restaurant) *RestaurantRepository {
	return &RestaurantRepository{
		restaurants: restaurants,
	}
}

// GetByID returns the restaurant with the given id.
func (r *RestaurantRepository) GetByID(_ context.Context, id string) (restaurant.Restaurant, error) {
	for _, rest := range r.restaurants {
		if rest.ID == id {
			rest.Menu = slices.Clone(rest.Menu)

			return rest, nil
		}
	}

	return restaurant.Restaurant{}, fmt.Errorf("%w: restaurant %s", errs.ErrNotFound, id)
}

// List returns the whole catalog.
func (r *RestaurantRepository) List(_ context.Context) ([]restaurant.Restaurant, error) {
	result := make([]restaurant.Restaurant, len(r.restaurants))
	for i, rest := range r.restaurants {
		rest.Menu = slices.Clone(rest.Menu)
		result[i] = rest
	}

	return result, nil
}
