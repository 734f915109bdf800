package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pinbox/pinbox/internal/apperror"
)

// errorResponse is the error shape returned by every endpoint.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError maps the error taxonomy to HTTP: validation -> 400,
// not found -> 404, anything else -> 500 with a generic message
// (internal details stay in the server log).
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(err, apperror.ErrValidation):
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error:   "validation_error",
				Message: appErr.Message,
			})
			return
		case errors.Is(err, apperror.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse{
				Error:   "not_found",
				Message: appErr.Message,
			})
			return
		}
	}

	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error:   "storage_error",
		Message: "internal server error",
	})
}
