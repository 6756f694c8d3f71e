package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"ticket-marketplace/internal/config"
	"ticket-marketplace/internal/database"
	"ticket-marketplace/internal/logger"
	"ticket-marketplace/internal/repositories"
	"ticket-marketplace/internal/services"
)

func main() {
	slug := flag.String("slug", "", "Look up a single category by slug")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Println("🔍 Checking Categories")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf(ctx, "Failed to load configuration: %v", err)
	}

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

	categoryService := services.NewCategoryService(repositories.NewCategoryRepository(db.DB))

	if *slug != "" {
		row, err := categoryService.GetCategoryBySlug(ctx, *slug)
		if err != nil {
			logger.Fatalf(ctx, "Failed to look up category %q: %v", *slug, err)
		}
		if row == nil {
			fmt.Println("Slug is blank")
			return
		}
		fmt.Printf("   ID: %s, Name: %s, Slug: %s, Icon: %s, Sort: %d\n",
			row.ID, row.Name, row.Slug, row.Icon, row.SortOrder)
		return
	}

	categories, err := categoryService.ListCategories(ctx)
	if err != nil {
		logger.Fatalf(ctx, "Failed to list categories: %v", err)
	}

	fmt.Println("📂 Available Categories:")
	total := 0
	for _, c := range categories {
		fmt.Printf("   ID: %s, Name: %s, Icon: %s, Active events: %d\n", c.ID, c.Name, c.Icon, c.Count)
		total += c.Count
	}
	fmt.Printf("   %d categories, %d categorized active events\n", len(categories), total)
}
