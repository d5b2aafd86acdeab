package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jkwan-hk/eatery/internal/api/handler"
	"github.com/jkwan-hk/eatery/internal/api/middleware"
	"github.com/jkwan-hk/eatery/internal/services/auth"
	"github.com/jkwan-hk/eatery/internal/services/directory"
	"github.com/jkwan-hk/eatery/internal/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger           *slog.Logger
	AuthService      *auth.Service
	DirectoryService *directory.Service
	Sessions         *session.Manager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Sessions)
	restaurantHandler := handler.NewRestaurantHandler(cfg.DirectoryService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.Sessions)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// User routes (no auth required for registering/logging in)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// Restaurant routes (all require auth)
	restaurants := api.PathPrefix("/restaurants").Subrouter()
	restaurants.Use(authMiddleware)
	restaurants.HandleFunc("", restaurantHandler.List).Methods(http.MethodGet)
	restaurants.HandleFunc("", restaurantHandler.Create).Methods(http.MethodPost)
	restaurants.HandleFunc("/{id}", restaurantHandler.Get).Methods(http.MethodGet)
	restaurants.HandleFunc("/{id}", restaurantHandler.Update).Methods(http.MethodPut)
	restaurants.HandleFunc("/{id}", restaurantHandler.Delete).Methods(http.MethodDelete)
	restaurants.HandleFunc("/{id}/grades", restaurantHandler.Rate).Methods(http.MethodPost)
	restaurants.HandleFunc("/{id}/image", restaurantHandler.Photo).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
