package handlers

import (
	"net/http"
)

const serviceName = "activity-map-service"

// Health is a liveness check; it does not reach Strava or the stores.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok", "service": serviceName})
}
