package getorder

import (
	"context"
	"net/http"

	"github.com/corray333/swiftserve/internal/service/services/ordersvc"
	"github.com/corray333/swiftserve/internal/transport/http/v1/apierr"
	"github.com/corray333/swiftserve/internal/transport/http/v1/converters"
	"github.com/go-chi/chi/v5"
)

// service is an interface for the service layer.
type service interface {
	GetOrderView(ctx context.Context, id string) (ordersvc.OrderView, error)
}

// GetOrder handles the order status request.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	view, err := service.GetOrderView(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apierr.WriteError(w, r, err)

		return
	}

	apierr.WriteJSON(w, http.StatusOK, converters.OrderViewToResponse(view))
}
