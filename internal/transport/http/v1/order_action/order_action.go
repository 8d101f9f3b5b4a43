// Package orderaction handles consumer and kitchen requests that move an order.
package orderaction

import (
	"context"
	"net/http"

	"github.com/corray333/swiftserve/internal/service/models/order"
	"github.com/corray333/swiftserve/internal/transport/http/v1/apierr"
	"github.com/corray333/swiftserve/internal/transport/http/v1/converters"
	"github.com/go-chi/chi/v5"
)

// service is an interface for the service layer.
type service interface {
	Cancel(ctx context.Context, id string) (order.Order, order.RefundTier, error)
	StartCooking(ctx context.Context, id string) (order.Order, error)
	PickUp(ctx context.Context, id string) (order.Order, error)
}

type cancelResponse struct {
	Order  converters.Order `json:"order"`
	Refund string           `json:"refund"`
}

// Cancel handles the cancellation request.
func Cancel(w http.ResponseWriter, r *http.Request, service service) {
	o, tier, err := service.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apierr.WriteError(w, r, err)

		return
	}

	apierr.WriteJSON(w, http.StatusOK, cancelResponse{
		Order:  converters.OrderToResponse(o),
		Refund: tier.String(),
	})
}

// StartCooking handles the manual cooking override.
func StartCooking(w http.ResponseWriter, r *http.Request, service service) {
	respond(w, r, service.StartCooking)
}

// PickUp handles the pickup confirmation.
func PickUp(w http.ResponseWriter, r *http.Request, service service) {
	respond(w, r, service.PickUp)
}

func respond(w http.ResponseWriter, r *http.Request, action func(context.Context, string) (order.Order, error)) {
	o, err := action(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apierr.WriteError(w, r, err)

		return
	}

	apierr.WriteJSON(w, http.StatusOK, converters.OrderToResponse(o))
}
