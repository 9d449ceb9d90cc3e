package utils

import (
	"encoding/json"
	"net/http"

	"ms-hotelbooking/internal/apperr"
)

// WriteJSON writes a JSON response body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError maps a typed failure to its HTTP status. Internal causes are not
// echoed to the client; callers log them before handing the error here.
func WriteError(w http.ResponseWriter, err error) {
	status := apperr.Status(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	http.Error(w, message, status)
}
