package services

import (
	"context"

	"ticket-marketplace/internal/models"
)

// EventBrowser defines the event browsing operations used by the HTTP layer
type EventBrowser interface {
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	ListEvents(ctx context.Context, filter models.EventFilter) ([]*models.Event, error)
	ListCities(ctx context.Context) ([]models.City, error)
	GetSeats(ctx context.Context, eventID string) ([]models.Seat, error)
	SelectSeats(ctx context.Context, eventID string, seatIDs []string) (*models.Event, []models.Seat, error)
}

var (
	_ EventBrowser   = (*EventService)(nil)
	_ CategoryReader = (*CategoryService)(nil)
	_ CategoryReader = (*CachedCategoryService)(nil)
)
