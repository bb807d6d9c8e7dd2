package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dcamposl/resilient-auth/internal/api/handlers"
	"github.com/dcamposl/resilient-auth/internal/auth"
	"github.com/dcamposl/resilient-auth/internal/services"
)

// PublicPaths lists the request paths the authenticator passes through
// without looking at the Authorization header: login, registration, and the
// liveness probe.
var PublicPaths = []string{"/auth/login", "/users", "/health"}

// NewRouter creates and configures a new Chi router.
func NewRouter(authenticator *auth.Authenticator, userService services.UserServiceProvider, authService services.AuthServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Message-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Attach an identity when a valid bearer token is present; anonymous
	// requests continue and are rejected per-route by the guards.
	r.Use(authenticator.Middleware)

	userHandler := handlers.NewUserHandler(userService)
	authHandler := handlers.NewAuthHandler(authService)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		handlers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.With(handlers.RequireAuth).Get("/me", authHandler.Me)
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.Create)
		// Internal endpoints, called by other services
		r.Get("/{id}", userHandler.Get)
		r.Post("/check-exists", userHandler.CheckExists)
		r.Post("/by-ids", userHandler.GetByIDs)
	})

	return r
}
