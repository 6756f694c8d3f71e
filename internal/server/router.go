package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"ticket-marketplace/internal/handlers"
	"ticket-marketplace/internal/middleware"
	"ticket-marketplace/internal/services"
)

// Dependencies are the collaborators the HTTP surface is built from
type Dependencies struct {
	Categories     services.CategoryReader
	Events         services.EventBrowser
	CartScope      *middleware.CartScope
	CartLimiter    *middleware.RateLimiter // nil disables cart rate limiting
	HealthChecks   map[string]handlers.HealthCheck
	AllowedOrigins []string
	RequestTimeout time.Duration
	// TrustProxyHeaders rewrites RemoteAddr from forwarding headers
	TrustProxyHeaders bool
}

// NewRouter wires every route of the marketplace API
func NewRouter(deps Dependencies) http.Handler {
	categoryHandler := handlers.NewCategoryHandler(deps.Categories)
	eventHandler := handlers.NewEventHandler(deps.Events)
	cartHandler := handlers.NewCartHandler(deps.Events)
	healthHandler := handlers.NewHealthHandler(deps.HealthChecks)

	r := chi.NewRouter()

	if deps.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.Correlation)
	r.Use(middleware.Logging)
	r.Use(middleware.ErrorHandling)
	r.Use(middleware.SecurityHeadersMiddleware)
	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig(deps.AllowedOrigins)))
	if deps.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(deps.RequestTimeout))
	}

	r.NotFound(middleware.NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(middleware.MethodNotAllowedHandler().ServeHTTP)

	r.Get("/healthz", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", categoryHandler.ListCategories)
		r.Get("/categories/{slug}", categoryHandler.GetCategory)

		r.Get("/events", eventHandler.ListEvents)
		r.Get("/events/{id}", eventHandler.GetEvent)
		r.Get("/events/{id}/seats", eventHandler.GetSeats)
		r.Get("/cities", eventHandler.ListCities)

		r.Route("/cart", func(r chi.Router) {
			if deps.CartLimiter != nil {
				r.Use(middleware.RateLimit(deps.CartLimiter))
			}
			r.Use(deps.CartScope.Handler)

			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItems)
			r.Delete("/items/{eventID}", cartHandler.RemoveItem)
		})
	})

	return r
}
