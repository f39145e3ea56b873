package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"travelbook/travel"
)

// Result is the envelope every travel endpoint answers with.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func RespondWithData(w http.ResponseWriter, code int, data any) {
	RespondWithJSON(w, code, Result{Success: true, Data: data})
}

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, Result{Success: false, Error: msg})
}

// StatusFor maps a core error to its HTTP status.
func StatusFor(err error) int {
	var te *travel.Error
	if !errors.As(err, &te) {
		return http.StatusInternalServerError
	}
	switch te.Kind {
	case travel.KindNotFound:
		return http.StatusNotFound
	case travel.KindValidation:
		return http.StatusBadRequest
	case travel.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// RespondWithTravelError writes err in the envelope. Store failures are not
// echoed to the client.
func RespondWithTravelError(w http.ResponseWriter, err error) {
	code := StatusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal storage error"
	}
	RespondWithError(w, code, msg)
}
