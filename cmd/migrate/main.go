package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"ticket-marketplace/internal/config"
	"ticket-marketplace/internal/database"
	"ticket-marketplace/internal/logger"
)

func main() {
	var (
		statusFlag = flag.Bool("status", false, "Show migration status")
		upFlag     = flag.Bool("up", false, "Run pending migrations")
	)
	flag.Parse()

	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf(ctx, "Failed to load config: %v", err)
	}
	logger.Configure(cfg.Log.Level, cfg.Server.IsDevelopment())

	// Connect to database
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

	switch {
	case *statusFlag:
		status, err := db.MigrationStatus()
		if err != nil {
			logger.Fatalf(ctx, "Failed to get migration status: %v", err)
		}
		for _, s := range status {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			fmt.Printf("%03d  %-30s %s\n", s.Version, s.Name, state)
		}
	case *upFlag:
		if err := db.RunMigrations(); err != nil {
			logger.Fatalf(ctx, "Failed to run migrations: %v", err)
		}
		fmt.Println("All migrations completed successfully!")
	default:
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/migrate -status   # Show migration status")
		fmt.Println("  go run ./cmd/migrate -up       # Run pending migrations")
		os.Exit(1)
	}
}
