package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ticket-marketplace/internal/models"
)

func newEventRouter(events *MockEventBrowser) http.Handler {
	h := NewEventHandler(events)
	r := chi.NewRouter()
	r.Get("/api/events", h.ListEvents)
	r.Get("/api/events/{id}", h.GetEvent)
	r.Get("/api/events/{id}/seats", h.GetSeats)
	r.Get("/api/cities", h.ListCities)
	return r
}

func TestEventHandler_ListEvents_ParsesFilter(t *testing.T) {
	events := new(MockEventBrowser)
	want := models.EventFilter{
		Category: models.CategoryConcerts,
		City:     "Austin",
		Featured: true,
		Limit:    10,
		Offset:   20,
	}
	events.On("ListEvents", mock.Anything, want).Return([]*models.Event{{ID: "evt-1", Title: "Jazz Night"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/events?category=concerts&city=Austin&featured=true&limit=10&offset=20", nil)
	rec := httptest.NewRecorder()
	newEventRouter(events).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []models.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "evt-1", got[0].ID)
	events.AssertExpectations(t)
}

func TestEventHandler_ListEvents_InvalidQuery(t *testing.T) {
	tests := []string{
		"/api/events?limit=abc",
		"/api/events?limit=-1",
		"/api/events?offset=x",
		"/api/events?featured=maybe",
	}

	for _, url := range tests {
		t.Run(url, func(t *testing.T) {
			events := new(MockEventBrowser)

			rec := httptest.NewRecorder()
			newEventRouter(events).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			events.AssertNotCalled(t, "ListEvents", mock.Anything, mock.Anything)
		})
	}
}

func TestEventHandler_ListEvents_UnknownCategory(t *testing.T) {
	events := new(MockEventBrowser)
	events.On("ListEvents", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: unknown category %q", models.ErrInvalidInput, "opera"))

	rec := httptest.NewRecorder()
	newEventRouter(events).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/events?category=opera", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown category")
}

func TestEventHandler_GetEvent(t *testing.T) {
	events := new(MockEventBrowser)
	events.On("GetEvent", mock.Anything, "evt-1").Return(&models.Event{ID: "evt-1", Title: "Jazz Night"}, nil)
	events.On("GetEvent", mock.Anything, "missing").Return(nil, fmt.Errorf("getting event: %w", models.ErrEventNotFound))

	router := newEventRouter(events)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/events/evt-1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/events/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEventHandler_GetSeats(t *testing.T) {
	events := new(MockEventBrowser)
	events.On("GetSeats", mock.Anything, "evt-1").Return([]models.Seat{
		{ID: "s1", Section: "A", Row: "1", Number: 1, Price: 2500, Status: models.SeatAvailable},
	}, nil)

	rec := httptest.NewRecorder()
	newEventRouter(events).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/events/evt-1/seats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []models.Seat
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, 2500, got[0].Price)
}

func TestEventHandler_ListCities(t *testing.T) {
	events := new(MockEventBrowser)
	events.On("ListCities", mock.Anything).Return(nil, nil)

	rec := httptest.NewRecorder()
	newEventRouter(events).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cities", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
