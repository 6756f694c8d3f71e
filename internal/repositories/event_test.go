package repositories

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"ticket-marketplace/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	eventRowColumns = []string{"id", "title", "description", "event_date", "event_time", "venue",
		"city", "state", "category", "price_from", "price_to", "featured", "image_url"}
	seatRowColumns = []string{"id", "section", "row_label", "seat_number", "price", "status"}
)

func TestEventRepository_GetEventByID(t *testing.T) {
	_, repo, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM events WHERE id = $1 AND is_active = true")).
		WithArgs("evt-1").
		WillReturnRows(sqlmock.NewRows(eventRowColumns).
			AddRow("evt-1", "Jazz Night", "", "2026-11-02", "20:00", "Blue Note", "New York", "NY",
				"concerts", 4500, 12000, true, ""))

	event, err := repo.GetEventByID(context.Background(), "evt-1")
	require.NoError(t, err)

	assert.Equal(t, "Jazz Night", event.Title)
	assert.Equal(t, models.CategoryConcerts, event.Category)
	assert.Equal(t, 4500, event.PriceFrom)
	assert.True(t, event.Featured)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_GetEventByID_NotFound(t *testing.T) {
	_, repo, mock := newMockDB(t)

	mock.ExpectQuery("FROM events").WithArgs("missing").WillReturnError(sql.ErrNoRows)

	event, err := repo.GetEventByID(context.Background(), "missing")
	assert.Nil(t, event)
	assert.ErrorIs(t, err, models.ErrEventNotFound)
}

func TestEventRepository_ListEvents_Filters(t *testing.T) {
	_, repo, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE is_active = true AND category = $1 AND LOWER(city) = LOWER($2) AND featured = true ORDER BY event_date ASC, id ASC LIMIT $3 OFFSET $4")).
		WithArgs("sports", "Chicago", 10, 20).
		WillReturnRows(sqlmock.NewRows(eventRowColumns).
			AddRow("evt-9", "Cubs vs Sox", "", "2026-07-01", "19:05", "Wrigley Field", "Chicago", "IL",
				"sports", 3000, 25000, true, ""))

	events, err := repo.ListEvents(context.Background(), models.EventFilter{
		Category: models.CategorySports,
		City:     "Chicago",
		Featured: true,
		Limit:    10,
		Offset:   20,
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "evt-9", events[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_ListEvents_DefaultLimit(t *testing.T) {
	_, repo, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE is_active = true ORDER BY")).
		WithArgs(defaultEventLimit, 0).
		WillReturnRows(sqlmock.NewRows(eventRowColumns))

	events, err := repo.ListEvents(context.Background(), models.EventFilter{Limit: -1, Offset: -5})
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_ListCities(t *testing.T) {
	_, repo, mock := newMockDB(t)

	mock.ExpectQuery("GROUP BY city, state").
		WillReturnRows(sqlmock.NewRows([]string{"city", "state", "event_count"}).
			AddRow("New York", "NY", 12).
			AddRow("Austin", "TX", 3))

	cities, err := repo.ListCities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.City{
		{Name: "New York", State: "NY", EventCount: 12},
		{Name: "Austin", State: "TX", EventCount: 3},
	}, cities)
}

func TestEventRepository_GetSeatsByIDs_PreservesRequestOrder(t *testing.T) {
	_, repo, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM seats WHERE event_id = $1 AND id = ANY($2)")).
		WithArgs("evt-1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(seatRowColumns).
			AddRow("s1", "101", "A", 1, 5000, "available").
			AddRow("s2", "101", "A", 2, 5000, "unavailable"))

	seats, err := repo.GetSeatsByIDs(context.Background(), "evt-1", []string{"s2", "s1"})
	require.NoError(t, err)
	require.Len(t, seats, 2)

	assert.Equal(t, "s2", seats[0].ID)
	assert.Equal(t, models.SeatUnavailable, seats[0].Status)
	assert.Equal(t, "s1", seats[1].ID)
}

func TestEventRepository_GetSeatsByIDs_Missing(t *testing.T) {
	_, repo, mock := newMockDB(t)

	mock.ExpectQuery("FROM seats").
		WithArgs("evt-1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(seatRowColumns).AddRow("s1", "101", "A", 1, 5000, "available"))

	seats, err := repo.GetSeatsByIDs(context.Background(), "evt-1", []string{"s1", "s404"})
	assert.Nil(t, seats)
	assert.ErrorIs(t, err, models.ErrSeatNotFound)
}

func TestEventRepository_GetSeatsByIDs_Empty(t *testing.T) {
	_, repo, mock := newMockDB(t)

	seats, err := repo.GetSeatsByIDs(context.Background(), "evt-1", nil)
	assert.NoError(t, err)
	assert.Nil(t, seats)
	assert.NoError(t, mock.ExpectationsWereMet())
}
