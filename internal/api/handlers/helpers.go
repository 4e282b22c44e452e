package handlers

import (
	"activity-map-service/internal/auth"
	"activity-map-service/internal/ports"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
)

const sessionCookie = "session"

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeUpstreamError maps a failed collaborator call to a response and logs the cause.
func writeUpstreamError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log.Printf("%s failed: path=%s err=%v", op, r.URL.Path, err)

	switch {
	case errors.Is(err, auth.ErrNoCredentials), errors.Is(err, ports.ErrUnauthorized):
		writeError(w, r, http.StatusUnauthorized, "strava authorization expired, please log in again")
	case errors.Is(err, ports.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "activity not found")
	default:
		writeError(w, r, http.StatusBadGateway, "could not load activities from strava")
	}
}

// sessionToken reads the session from the cookie, or from a bearer header for API clients.
func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// requireAthlete resolves the athlete behind the request or answers 401.
func requireAthlete(w http.ResponseWriter, r *http.Request, sessions *auth.Sessions) (int64, bool) {
	claims, err := sessions.Verify(sessionToken(r))
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, "not logged in")
		return 0, false
	}
	return claims.AthleteID, true
}
