package utils

import (
	"encoding/json"
	"net/http"

	"paddy-backend/internal/apperrors"
)

// JSON writes data as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// Error writes err as a JSON error response, mapping the error kind to an
// HTTP status. Unclassified errors become opaque 500s.
func Error(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		status = http.StatusNotFound
		message = err.Error()
	case apperrors.KindConflict:
		status = http.StatusConflict
		message = err.Error()
	case apperrors.KindValidation:
		status = http.StatusBadRequest
		message = err.Error()
	case apperrors.KindBusinessRule:
		status = http.StatusUnprocessableEntity
		message = err.Error()
	}

	JSON(w, status, errorBody{Error: message})
}

// IsServerError reports whether err maps to a 5xx response, for handlers
// deciding what to log.
func IsServerError(err error) bool {
	return apperrors.KindOf(err) == apperrors.KindUnknown
}
