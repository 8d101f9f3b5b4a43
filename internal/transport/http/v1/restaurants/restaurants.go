package restaurants

import (
	"context"
	"net/http"

	"github.com/corray333/swiftserve/internal/service/models/restaurant"
	"github.com/corray333/swiftserve/internal/service/services/ordersvc"
	"github.com/corray333/swiftserve/internal/service/timing"
	"github.com/corray333/swiftserve/internal/transport/http/v1/apierr"
	"github.com/go-chi/chi/v5"
)

// service is an interface for the service layer.
type service interface {
	ListRestaurants(ctx context.Context) ([]ordersvc.RestaurantListing, error)
	GetRestaurant(ctx context.Context, id string) (ordersvc.RestaurantListing, error)
}

type restaurantResponse struct {
	restaurant.Restaurant
	DistanceClass timing.DistanceClass `json:"distanceClass"`
}

func toResponse(l ordersvc.RestaurantListing) restaurantResponse {
	return restaurantResponse{
		Restaurant:    l.Restaurant,
		DistanceClass: l.Distance,
	}
}

// ListRestaurants handles the restaurant catalog request.
func ListRestaurants(w http.ResponseWriter, r *http.Request, service service) {
	listings, err := service.ListRestaurants(r.Context())
	if err != nil {
		apierr.WriteError(w, r, err)

		return
	}

	resp := make([]restaurantResponse, 0, len(listings))
	for _, l := range listings {
		resp = append(resp, toResponse(l))
	}

	apierr.WriteJSON(w, http.StatusOK, resp)
}

// GetRestaurant handles the single restaurant request.
func GetRestaurant(w http.ResponseWriter, r *http.Request, service service) {
	listing, err := service.GetRestaurant(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apierr.WriteError(w, r, err)

		return
	}

	apierr.WriteJSON(w, http.StatusOK, toResponse(listing))
}
