package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"ticket-marketplace/internal/logger"
	"ticket-marketplace/internal/models"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeError maps err onto a status code. Internal failures, including a
// missing cart scope, are logged and answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Errorf(r.Context(), "%s %s failed: %v", r.Method, r.URL.Path, err)
		message = "internal server error"
	}
	writeJSON(w, status, ErrorResponse{Error: message})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrSeatUnavailable):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrEventNotFound),
		errors.Is(err, models.ErrCategoryNotFound),
		errors.Is(err, models.ErrSeatNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
