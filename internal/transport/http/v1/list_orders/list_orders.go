package listorders

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/corray333/swiftserve/internal/service/models/errs"
	"github.com/corray333/swiftserve/internal/service/models/order"
	"github.com/corray333/swiftserve/internal/transport/http/v1/apierr"
	"github.com/corray333/swiftserve/internal/transport/http/v1/converters"
)

// service is an interface for the service layer.
type service interface {
	ListOrders(ctx context.Context, query order.QueryOrdersModel) ([]order.Order, error)
}

func parseNonNegative(query map[string][]string, key string) (int, error) {
	values := query[key]
	if len(values) == 0 || values[0] == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(values[0])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", errs.ErrInvalidInput, key)
	}

	return n, nil
}

// ListOrders handles the list orders request.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	query := r.URL.Query()

	model := order.QueryOrdersModel{}
	if active := query.Get("active"); active != "" {
		activeOnly, err := strconv.ParseBool(active)
		if err != nil {
			apierr.WriteError(w, r, fmt.Errorf("%w: active must be a boolean", errs.ErrInvalidInput))

			return
		}
		model.ActiveOnly = activeOnly
	}

	var err error
	if model.Limit, err = parseNonNegative(query, "limit"); err != nil {
		apierr.WriteError(w, r, err)

		return
	}
	if model.Offset, err = parseNonNegative(query, "offset"); err != nil {
		apierr.WriteError(w, r, err)

		return
	}

	orders, err := service.ListOrders(r.Context(), model)
	if err != nil {
		apierr.WriteError(w, r, err)

		return
	}

	apierr.WriteJSON(w, http.StatusOK, converters.OrdersToResponse(orders))
}
