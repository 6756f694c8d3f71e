package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ticket-marketplace/internal/cache"
	"ticket-marketplace/internal/config"
	"ticket-marketplace/internal/database"
	"ticket-marketplace/internal/logger"
	"ticket-marketplace/internal/models"
	"ticket-marketplace/internal/repositories"
	"ticket-marketplace/internal/services"
)

// seedNamespace keeps generated ids stable across runs so reseeding is idempotent
var seedNamespace = uuid.MustParse("6f1c3f0e-2b5a-4d7e-9a41-3c8d2e7b5f10")

type seedEvent struct {
	models.Event
	categorySlug string // empty leaves the event uncategorized
	sections     []seedSection
}

type seedSection struct {
	name        string
	rows        []string
	seatsPerRow int
	price       int // in cents
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fmt.Println("🌱 Seeding categories, events and seats")

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

	if err := db.RunMigrations(); err != nil {
		logger.Fatalf(ctx, "Failed to run migrations: %v", err)
	}

	categoryRepo := repositories.NewCategoryRepository(db.DB)
	eventRepo := repositories.NewEventRepository(db.DB)

	categoryIDs := make(map[string]string)
	for i, c := range []struct{ name, icon, description string }{
		{"Concerts", "music", "Live music from every genre"},
		{"Sports", "trophy", "Games, matches and tournaments"},
		{"Theater", "masks", "Plays, musicals and opera"},
		{"Comedy", "mic", "Stand-up and improv nights"},
	} {
		row := &models.CategoryRow{
			ID:          models.GenerateSlug(c.name),
			Name:        c.name,
			Slug:        models.GenerateSlug(c.name),
			Icon:        c.icon,
			Description: c.description,
			SortOrder:   i + 1,
		}
		if err := categoryRepo.CreateCategory(ctx, row); err != nil {
			logger.Fatalf(ctx, "Failed to create category %s: %v", c.name, err)
		}
		categoryIDs[row.Slug] = row.ID
		fmt.Printf("✅ Category: %s\n", row.Name)
	}

	for _, se := range sampleEvents() {
		event := se.Event
		event.ID = uuid.NewSHA1(seedNamespace, []byte(event.Title)).String()

		var categoryID *string
		if id, ok := categoryIDs[se.categorySlug]; ok {
			categoryID = &id
		}

		seats := buildSeats(event.ID, se.sections)
		event.PriceFrom, event.PriceTo = priceRange(seats)

		if err := eventRepo.CreateEvent(ctx, &event, categoryID); err != nil {
			logger.Fatalf(ctx, "Failed to create event %s: %v", event.Title, err)
		}
		for i := range seats {
			if err := eventRepo.CreateSeat(ctx, event.ID, &seats[i]); err != nil {
				logger.Fatalf(ctx, "Failed to create seat %s: %v", seats[i].Label(), err)
			}
		}
		fmt.Printf("✅ Event: %s (%s) with %d seats\n", event.Title, event.Location(), len(seats))
	}

	// Drop cached category counts so the API reflects the new events
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Warnf(ctx, "Skipping category cache invalidation: %v", err)
		} else {
			defer client.Close()
			cached := services.NewCachedCategoryService(
				services.NewCategoryService(categoryRepo), cache.NewRedisService(client), cfg.Cache.CategoryTTL)
			if err := cached.Invalidate(ctx); err != nil {
				logger.Warnf(ctx, "Failed to invalidate category cache: %v", err)
			}
		}
	}

	fmt.Println("🎉 Seeding complete")
}

func buildSeats(eventID string, sections []seedSection) []models.Seat {
	var seats []models.Seat
	for _, section := range sections {
		for _, row := range section.rows {
			for n := 1; n <= section.seatsPerRow; n++ {
				status := models.SeatAvailable
				// every seventh seat is already sold
				if n%7 == 0 {
					status = models.SeatUnavailable
				}
				key := fmt.Sprintf("%s/%s/%s/%d", eventID, section.name, row, n)
				seats = append(seats, models.Seat{
					ID:      uuid.NewSHA1(seedNamespace, []byte(key)).String(),
					Section: section.name,
					Row:     row,
					Number:  n,
					Price:   section.price,
					Status:  status,
				})
			}
		}
	}
	return seats
}

func priceRange(seats []models.Seat) (int, int) {
	if len(seats) == 0 {
		return 0, 0
	}
	lo, hi := seats[0].Price, seats[0].Price
	for _, s := range seats[1:] {
		if s.Price < lo {
			lo = s.Price
		}
		if s.Price > hi {
			hi = s.Price
		}
	}
	return lo, hi
}

func sampleEvents() []seedEvent {
	date := func(days int) string {
		return time.Now().AddDate(0, 0, days).Format("2006-01-02")
	}

	standard := []seedSection{
		{name: "Floor", rows: []string{"A", "B"}, seatsPerRow: 10, price: 12000},
		{name: "Balcony", rows: []string{"C", "D", "E"}, seatsPerRow: 12, price: 6500},
	}
	stadium := []seedSection{
		{name: "101", rows: []string{"F", "G"}, seatsPerRow: 14, price: 9500},
		{name: "205", rows: []string{"K", "L"}, seatsPerRow: 14, price: 4500},
	}
	club := []seedSection{
		{name: "Main", rows: []string{"1", "2", "3"}, seatsPerRow: 8, price: 3500},
	}

	return []seedEvent{
		{
			Event: models.Event{
				Title:       "Midnight Echoes World Tour",
				Description: "An evening of synth-pop anthems and a full light show.",
				Date:        date(21), Time: "20:00",
				Venue: "Riverside Arena", City: "Austin", State: "TX",
				Category: models.CategoryConcerts, Featured: true,
			},
			categorySlug: "concerts",
			sections:     standard,
		},
		{
			Event: models.Event{
				Title: "Jazz at the Lighthouse",
				Date:  date(9), Time: "19:30",
				Venue: "Lighthouse Hall", City: "Chicago", State: "IL",
				Category: models.CategoryConcerts,
			},
			categorySlug: "concerts",
			sections:     club,
		},
		{
			Event: models.Event{
				Title:       "City Derby: Rovers vs United",
				Description: "Season opener between the two city rivals.",
				Date:        date(14), Time: "15:00",
				Venue: "Memorial Stadium", City: "Austin", State: "TX",
				Category: models.CategorySports, Featured: true,
			},
			categorySlug: "sports",
			sections:     stadium,
		},
		{
			Event: models.Event{
				Title:       "The Glass Menagerie",
				Description: "A new staging of the classic memory play.",
				Date:        date(30), Time: "19:00",
				Venue: "Lyric Theater", City: "New York", State: "NY",
				Category: models.CategoryTheater,
			},
			categorySlug: "theater",
			sections:     standard,
		},
		{
			Event: models.Event{
				Title: "Open Mic Marathon",
				Date:  date(5), Time: "21:00",
				Venue: "The Basement", City: "Chicago", State: "IL",
				Category: models.CategoryComedy,
			},
			sections: club,
		},
	}
}
