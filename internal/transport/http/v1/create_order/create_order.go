package createorder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/corray333/swiftserve/internal/service/models/errs"
	"github.com/corray333/swiftserve/internal/service/models/order"
	"github.com/corray333/swiftserve/internal/service/services/ordersvc"
	"github.com/corray333/swiftserve/internal/service/timing"
	"github.com/corray333/swiftserve/internal/transport/http/v1/apierr"
	"github.com/corray333/swiftserve/internal/transport/http/v1/converters"
)

// service is an interface for the service layer.
type service interface {
	Book(ctx context.Context, req ordersvc.BookingRequest) (order.Order, timing.Evaluation, error)
}

// createOrderRequest represents a booking request. Field rules live on
// ordersvc.BookingRequest.
type createOrderRequest struct {
	RestaurantID             string `json:"restaurantId"`
	UserName                 string `json:"userName"`
	PartySize                int    `json:"partySize"`
	MealDetails              string `json:"mealDetails"`
	UserEstimatedArrivalTime int    `json:"userEstimatedArrivalTime"`
}

func (r *createOrderRequest) toModel() ordersvc.BookingRequest {
	return ordersvc.BookingRequest{
		RestaurantID:             r.RestaurantID,
		UserName:                 r.UserName,
		PartySize:                r.PartySize,
		MealDetails:              r.MealDetails,
		UserEstimatedArrivalTime: r.UserEstimatedArrivalTime,
	}
}

type createOrderResponse struct {
	Order      converters.Order  `json:"order"`
	Evaluation timing.Evaluation `json:"evaluation"`
}

type rejectedBookingResponse struct {
	apierr.ErrorResponse
	Evaluation timing.Evaluation `json:"evaluation"`
}

// CreateOrder handles the booking request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	req := createOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Info("Error decoding request body for booking", "error", err)
		apierr.WriteError(w, r, fmt.Errorf("%w: %w", errs.ErrInvalidInput, err))

		return
	}

	o, eval, err := service.Book(r.Context(), req.toModel())
	if err != nil {
		if errors.Is(err, errs.ErrInvalidInput) && eval.Verdict == timing.VerdictTooEarly {
			apierr.WriteJSON(w, http.StatusBadRequest, rejectedBookingResponse{
				ErrorResponse: apierr.ErrorResponse{Error: err.Error()},
				Evaluation:    eval,
			})

			return
		}
		apierr.WriteError(w, r, err)

		return
	}

	apierr.WriteJSON(w, http.StatusCreated, createOrderResponse{
		Order:      converters.OrderToResponse(o),
		Evaluation: eval,
	})
}
