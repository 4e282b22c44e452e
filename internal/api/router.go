package api

import (
	"activity-map-service/internal/api/handlers"
	"activity-map-service/internal/auth"
	"activity-map-service/internal/ports"
	"activity-map-service/internal/services"
	"net/http"
	"time"
)

// Dependencies the HTTP surface needs, all behind ports or services.
type Deps struct {
	Auth          ports.AuthProvider
	Tokens        ports.TokenStore
	Activities    *services.ActivityService
	Sessions      *auth.Sessions
	Location      *time.Location
	SecureCookies bool
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	authHandler := &handlers.AuthHandler{
		Provider:      d.Auth,
		Store:         d.Tokens,
		Activities:    d.Activities,
		Sessions:      d.Sessions,
		SecureCookies: d.SecureCookies,
	}
	activityHandler := &handlers.ActivityHandler{
		Activities: d.Activities,
		Sessions:   d.Sessions,
		Location:   d.Location,
	}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("GET /auth/login", authHandler.Login)
	mux.HandleFunc("GET /auth/callback", authHandler.Callback)
	mux.HandleFunc("POST /auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /activities", activityHandler.List)
	mux.HandleFunc("GET /activities/map", activityHandler.Map)
	mux.HandleFunc("GET /activities/{id}", activityHandler.Get)
	mux.HandleFunc("GET /activities/{id}/gpx", activityHandler.GPX)

	return requestIDMiddleware(loggingMiddleware(mux))
}
