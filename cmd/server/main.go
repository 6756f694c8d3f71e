package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/sessions"

	"ticket-marketplace/internal/cache"
	"ticket-marketplace/internal/config"
	"ticket-marketplace/internal/database"
	"ticket-marketplace/internal/handlers"
	"ticket-marketplace/internal/logger"
	"ticket-marketplace/internal/middleware"
	"ticket-marketplace/internal/repositories"
	"ticket-marketplace/internal/server"
	"ticket-marketplace/internal/services"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf(ctx, "Failed to load configuration: %v", err)
	}
	logger.Configure(cfg.Log.Level, cfg.Server.IsDevelopment())

	// Initialize database connection
	db, err := database.NewConnection(database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatalf(ctx, "Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Infof(ctx, "Database connection established")

	if err := db.RunMigrations(); err != nil {
		logger.Fatalf(ctx, "Failed to run migrations: %v", err)
	}

	// Category cache; without redis every call goes to the database
	var categoryCache cache.Service = cache.Noop{}
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Warnf(ctx, "Redis unavailable, category cache disabled: %v", err)
		} else {
			defer client.Close()
			categoryCache = cache.NewRedisService(client)
			logger.Infof(ctx, "Category cache enabled at %s", cfg.Redis.Addr)
		}
	}

	// Create session store; carts live server side, the cookie only carries the id
	sessionStore, err := middleware.NewServerSessionStore(cfg.Session.Dir, []byte(cfg.Session.Secret))
	if err != nil {
		logger.Fatalf(ctx, "Failed to create session store: %v", err)
	}
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		HttpOnly: true,
		Secure:   !cfg.Server.IsDevelopment(),
		SameSite: http.SameSiteLaxMode,
	}

	var cartOptions []services.CartOption
	if cfg.Cart.DedupeSeats {
		cartOptions = append(cartOptions, services.WithSeatDeduplication())
	}

	// Initialize repositories and services
	categoryRepo := repositories.NewCategoryRepository(db.DB)
	eventRepo := repositories.NewEventRepository(db.DB)

	categoryService := services.NewCachedCategoryService(
		services.NewCategoryService(categoryRepo), categoryCache, cfg.Cache.CategoryTTL)
	eventService := services.NewEventService(eventRepo)

	stop := make(chan struct{})
	var cartLimiter *middleware.RateLimiter
	if cfg.HTTP.CartRateLimit > 0 {
		cartLimiter = middleware.NewRateLimiter(cfg.HTTP.CartRateLimit, cfg.HTTP.CartRateWindow)
		go cartLimiter.Run(time.Minute, stop)
	}

	router := server.NewRouter(server.Dependencies{
		Categories:  categoryService,
		Events:      eventService,
		CartScope:   middleware.NewCartScope(sessionStore, cfg.Cart.TTL, cartOptions...),
		CartLimiter: cartLimiter,
		HealthChecks: map[string]handlers.HealthCheck{
			"database": db.Health,
			"cache":    categoryCache.Ping,
		},
		AllowedOrigins:    cfg.HTTP.AllowedOrigins,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		TrustProxyHeaders: cfg.HTTP.TrustProxyHeaders,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Infof(ctx, "Server starting on %s (Environment: %s)", srv.Addr, cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf(ctx, "Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof(ctx, "Shutting down server...")
	close(stop)

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "Forced shutdown: %v", err)
	}
}
