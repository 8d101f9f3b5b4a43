// Package apierr writes JSON responses and maps service errors to HTTP status codes.
package apierr

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/corray333/swiftserve/internal/service/models/errs"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusCode maps err to an HTTP status code.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, errs.ErrCancellationUnavailable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err with its mapped status. Internal errors are logged and
// hidden from the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusCode(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		msg = http.StatusText(status)
	}

	WriteJSON(w, status, ErrorResponse{Error: msg})
}

// WriteJSON writes v as a JSON body with status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error writing response", "error", err)
	}
}
