package services

import (
	"context"
	"fmt"
	"strings"

	"ticket-marketplace/internal/models"
)

// EventStore defines the event and seat reads the event service needs
type EventStore interface {
	GetEventByID(ctx context.Context, id string) (*models.Event, error)
	ListEvents(ctx context.Context, filter models.EventFilter) ([]*models.Event, error)
	ListCities(ctx context.Context) ([]models.City, error)
	GetSeatsByEventID(ctx context.Context, eventID string) ([]models.Seat, error)
	GetSeatsByIDs(ctx context.Context, eventID string, ids []string) ([]models.Seat, error)
}

// EventService serves the browsing path: events, cities and seat listings
type EventService struct {
	store EventStore
}

// NewEventService creates a new event service
func NewEventService(store EventStore) *EventService {
	return &EventService{store: store}
}

// GetEvent retrieves an active event by ID
func (s *EventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: event id is required", models.ErrInvalidInput)
	}
	return s.store.GetEventByID(ctx, id)
}

// ListEvents returns active events matching filter
func (s *EventService) ListEvents(ctx context.Context, filter models.EventFilter) ([]*models.Event, error) {
	if filter.Category != "" && !filter.Category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %q", models.ErrInvalidInput, filter.Category)
	}
	filter.City = strings.TrimSpace(filter.City)
	return s.store.ListEvents(ctx, filter)
}

// ListCities returns cities that currently have active events
func (s *EventService) ListCities(ctx context.Context) ([]models.City, error) {
	return s.store.ListCities(ctx)
}

// GetSeats returns the seat listing of an active event
func (s *EventService) GetSeats(ctx context.Context, eventID string) ([]models.Seat, error) {
	if _, err := s.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.store.GetSeatsByEventID(ctx, eventID)
}

// SelectSeats resolves a cart selection into the event and its requested seats.
// Every seat must exist and be available.
func (s *EventService) SelectSeats(ctx context.Context, eventID string, seatIDs []string) (*models.Event, []models.Seat, error) {
	if len(seatIDs) == 0 {
		return nil, nil, fmt.Errorf("%w: at least one seat is required", models.ErrInvalidInput)
	}

	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}

	seats, err := s.store.GetSeatsByIDs(ctx, eventID, seatIDs)
	if err != nil {
		return nil, nil, err
	}

	for _, seat := range seats {
		if !seat.IsAvailable() {
			return nil, nil, fmt.Errorf("%w: %s", models.ErrSeatUnavailable, seat.Label())
		}
	}

	return event, seats, nil
}
