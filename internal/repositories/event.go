package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ticket-marketplace/internal/models"

	"github.com/lib/pq"
)

// EventRepository reads active events and their seat listings from Postgres
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, title, description, event_date, event_time, venue, city, state,
	category, price_from, price_to, featured, image_url`

const seatColumns = `id, section, row_label, seat_number, price, status`

const defaultEventLimit = 50

// GetEventByID returns an active event by id
func (r *EventRepository) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND is_active = true`

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// ListEvents returns active events matching the filter, ordered by date
func (r *EventRepository) ListEvents(ctx context.Context, filter models.EventFilter) ([]*models.Event, error) {
	var (
		conditions = []string{"is_active = true"}
		args       []interface{}
	)

	if filter.Category != "" {
		args = append(args, string(filter.Category))
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.City != "" {
		args = append(args, filter.City)
		conditions = append(conditions, fmt.Sprintf("LOWER(city) = LOWER($%d)", len(args)))
	}
	if filter.Featured {
		conditions = append(conditions, "featured = true")
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = defaultEventLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	query := fmt.Sprintf(`SELECT %s FROM events WHERE %s ORDER BY event_date ASC, id ASC LIMIT $%d OFFSET $%d`,
		eventColumns, strings.Join(conditions, " AND "), len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// ListCities returns the distinct cities that currently have active events
func (r *EventRepository) ListCities(ctx context.Context) ([]models.City, error) {
	query := `
		SELECT city, state, COUNT(*) AS event_count
		FROM events
		WHERE is_active = true
		GROUP BY city, state
		ORDER BY event_count DESC, city ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	defer rows.Close()

	var cities []models.City
	for rows.Next() {
		var c models.City
		if err := rows.Scan(&c.Name, &c.State, &c.EventCount); err != nil {
			return nil, fmt.Errorf("failed to scan city: %w", err)
		}
		cities = append(cities, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cities: %w", err)
	}

	return cities, nil
}

// GetSeatsByEventID returns the seat listing of an event
func (r *EventRepository) GetSeatsByEventID(ctx context.Context, eventID string) ([]models.Seat, error) {
	query := `SELECT ` + seatColumns + ` FROM seats WHERE event_id = $1 ORDER BY section, row_label, seat_number`
	return r.querySeats(ctx, query, eventID)
}

// GetSeatsByIDs returns the requested seats of an event in the order they were requested.
// A missing id yields models.ErrSeatNotFound.
func (r *EventRepository) GetSeatsByIDs(ctx context.Context, eventID string, ids []string) ([]models.Seat, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + seatColumns + ` FROM seats WHERE event_id = $1 AND id = ANY($2)`
	seats, err := r.querySeats(ctx, query, eventID, pq.Array(ids))
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Seat, len(seats))
	for _, seat := range seats {
		byID[seat.ID] = seat
	}

	ordered := make([]models.Seat, 0, len(ids))
	for _, id := range ids {
		seat, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", models.ErrSeatNotFound, id)
		}
		ordered = append(ordered, seat)
	}
	return ordered, nil
}

// CreateEvent inserts an event row, used by the seed tool
func (r *EventRepository) CreateEvent(ctx context.Context, event *models.Event, categoryID *string) error {
	query := `
		INSERT INTO events (` + eventColumns + `, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.Title, event.Description, event.Date, event.Time, event.Venue,
		event.City, event.State, string(event.Category), event.PriceFrom, event.PriceTo,
		event.Featured, event.ImageURL, categoryID)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// CreateSeat inserts a seat row for an event, used by the seed tool
func (r *EventRepository) CreateSeat(ctx context.Context, eventID string, seat *models.Seat) error {
	query := `
		INSERT INTO seats (` + seatColumns + `, event_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query,
		seat.ID, seat.Section, seat.Row, seat.Number, seat.Price, string(seat.Status), eventID)
	if err != nil {
		return fmt.Errorf("failed to create seat: %w", err)
	}
	return nil
}

func (r *EventRepository) querySeats(ctx context.Context, query string, args ...interface{}) ([]models.Seat, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query seats: %w", err)
	}
	defer rows.Close()

	var seats []models.Seat
	for rows.Next() {
		var s models.Seat
		var status string
		if err := rows.Scan(&s.ID, &s.Section, &s.Row, &s.Number, &s.Price, &status); err != nil {
			return nil, fmt.Errorf("failed to scan seat: %w", err)
		}
		s.Status = models.SeatStatus(status)
		seats = append(seats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate seats: %w", err)
	}

	return seats, nil
}

func scanEvent(s scanner) (*models.Event, error) {
	var e models.Event
	var category string
	err := s.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Time, &e.Venue, &e.City, &e.State,
		&category, &e.PriceFrom, &e.PriceTo, &e.Featured, &e.ImageURL)
	if err != nil {
		return nil, err
	}
	e.Category = models.EventCategory(category)
	return &e, nil
}
