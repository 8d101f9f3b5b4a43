package getpunctuality

import (
	"context"
	"net/http"

	"github.com/corray333/swiftserve/internal/service/punctuality"
	"github.com/corray333/swiftserve/internal/transport/http/v1/apierr"
)

// service is an interface for the service layer.
type service interface {
	Punctuality(ctx context.Context) (punctuality.Summary, error)
}

// GetPunctuality handles the punctuality score request.
func GetPunctuality(w http.ResponseWriter, r *http.Request, service service) {
	summary, err := service.Punctuality(r.Context())
	if err != nil {
		apierr.WriteError(w, r, err)

		return
	}

	apierr.WriteJSON(w, http.StatusOK, summary)
}
