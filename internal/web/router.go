package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jkwan-hk/eatery/internal/services/auth"
	"github.com/jkwan-hk/eatery/internal/services/directory"
	"github.com/jkwan-hk/eatery/internal/session"
	"github.com/jkwan-hk/eatery/internal/web/handler"
	"github.com/jkwan-hk/eatery/internal/web/middleware"
	"github.com/jkwan-hk/eatery/internal/web/view"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger           *slog.Logger
	AuthService      *auth.Service
	DirectoryService *directory.Service
	Sessions         *session.Manager
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	authMiddleware := middleware.Auth(cfg.Sessions)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.Sessions)

	// Apply global middleware to all routes
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Create handlers
	renderer := view.New()
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Sessions, renderer)
	homeHandler := handler.NewHomeHandler(renderer)
	restaurantHandler := handler.NewRestaurantHandler(cfg.DirectoryService, renderer)
	imageHandler := handler.NewImageHandler(cfg.DirectoryService)

	// Public routes (optional auth for the nav and redirects)
	public := r.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(optionalAuthMiddleware)
	public.HandleFunc("/signin", authHandler.SignInPage).Methods(http.MethodGet)
	public.HandleFunc("/signin", authHandler.SignIn).Methods(http.MethodPost)
	public.HandleFunc("/signup", authHandler.SignUpPage).Methods(http.MethodGet)
	public.HandleFunc("/signup", authHandler.SignUp).Methods(http.MethodPost)
	public.HandleFunc("/logout", authHandler.SignOut).Methods(http.MethodPost)
	public.HandleFunc("/image", imageHandler.Image).Methods(http.MethodGet)

	// Protected routes (require a valid session)
	protected := r.NewRoute().Subrouter()
	protected.Use(flashMiddleware)
	protected.Use(authMiddleware)
	protected.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	protected.HandleFunc("/restaurant/list", restaurantHandler.ListPage).Methods(http.MethodGet)
	protected.HandleFunc("/restaurant/search", restaurantHandler.SearchPage).Methods(http.MethodGet)
	protected.HandleFunc("/restaurant/show", restaurantHandler.ShowPage).Methods(http.MethodGet)
	protected.HandleFunc("/restaurant/new", restaurantHandler.NewPage).Methods(http.MethodGet)
	protected.HandleFunc("/restaurant/new", restaurantHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/restaurant/update", restaurantHandler.UpdatePage).Methods(http.MethodGet)
	protected.HandleFunc("/restaurant/update", restaurantHandler.Update).Methods(http.MethodPost)
	protected.HandleFunc("/restaurant/delete", restaurantHandler.DeletePage).Methods(http.MethodGet)
	protected.HandleFunc("/restaurant/delete", restaurantHandler.Delete).Methods(http.MethodPost)
	protected.HandleFunc("/restaurant/rate", restaurantHandler.RatePage).Methods(http.MethodGet)
	protected.HandleFunc("/restaurant/rate", restaurantHandler.Rate).Methods(http.MethodPost)

	return r
}
