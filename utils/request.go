package utils

import (
	"net/http"

	"travelbook/globals"
)

func GetUserIDFromRequest(r *http.Request) string {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	return userID
}

// GetTwinIDFromRequest returns the partition set by middleware.Authenticate.
func GetTwinIDFromRequest(r *http.Request) string {
	twinID, _ := r.Context().Value(globals.TwinIDKey).(string)
	return twinID
}
