package evaluatebooking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/corray333/swiftserve/internal/service/models/errs"
	"github.com/corray333/swiftserve/internal/service/timing"
	"github.com/corray333/swiftserve/internal/transport/http/v1/apierr"
	"github.com/go-playground/validator/v10"
)

// service is an interface for the service layer.
type service interface {
	EvaluateBooking(ctx context.Context, restaurantID string, travelMinutes int) (timing.Evaluation, error)
}

// evaluateBookingRequest represents a timing check request.
type evaluateBookingRequest struct {
	RestaurantID             string `json:"restaurantId"             validate:"required"`
	UserEstimatedArrivalTime int    `json:"userEstimatedArrivalTime"`
}

// Validate validates the evaluate booking request.
func (r *evaluateBookingRequest) Validate() error {
	return validator.New().Struct(r)
}

// EvaluateBooking handles the booking timing check.
func EvaluateBooking(w http.ResponseWriter, r *http.Request, service service) {
	req := evaluateBookingRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, r, fmt.Errorf("%w: %w", errs.ErrInvalidInput, err))

		return
	}

	if err := req.Validate(); err != nil {
		apierr.WriteError(w, r, fmt.Errorf("%w: %w", errs.ErrInvalidInput, err))

		return
	}

	eval, err := service.EvaluateBooking(r.Context(), req.RestaurantID, req.UserEstimatedArrivalTime)
	if err != nil {
		apierr.WriteError(w, r, err)

		return
	}

	apierr.WriteJSON(w, http.StatusOK, eval)
}
