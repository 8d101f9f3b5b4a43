package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/corray333/swiftserve/internal/service/models/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: eta", errs.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("%w: order SW-1", errs.ErrNotFound), http.StatusNotFound},
		{errs.ErrInvalidTransition, http.StatusConflict},
		{errs.ErrCancellationUnavailable, http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: %w", errs.ErrCancellationUnavailable, errs.ErrInvalidTransition), http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestWriteErrorHidesInternalErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodGet, "/api/orders", nil), errors.New("pool exhausted"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Internal Server Error", body.Error)
}
