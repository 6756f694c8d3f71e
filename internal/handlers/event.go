package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ticket-marketplace/internal/models"
	"ticket-marketplace/internal/services"
)

// EventHandler serves events, seat listings and cities
type EventHandler struct {
	events services.EventBrowser
}

// NewEventHandler creates a new event handler
func NewEventHandler(events services.EventBrowser) *EventHandler {
	return &EventHandler{events: events}
}

// ListEvents returns active events, filtered by the query string
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	filter, err := parseEventFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	events, err := h.events.ListEvents(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if events == nil {
		events = []*models.Event{}
	}

	writeJSON(w, http.StatusOK, events)
}

// GetEvent returns a single active event
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// GetSeats returns the seat listing of an event
func (h *EventHandler) GetSeats(w http.ResponseWriter, r *http.Request) {
	seats, err := h.events.GetSeats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if seats == nil {
		seats = []models.Seat{}
	}

	writeJSON(w, http.StatusOK, seats)
}

// ListCities returns cities with active events
func (h *EventHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.events.ListCities(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if cities == nil {
		cities = []models.City{}
	}

	writeJSON(w, http.StatusOK, cities)
}

func parseEventFilter(r *http.Request) (models.EventFilter, error) {
	q := r.URL.Query()
	filter := models.EventFilter{
		Category: models.EventCategory(q.Get("category")),
		City:     q.Get("city"),
	}

	if v := q.Get("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			return filter, fmt.Errorf("%w: featured must be true or false", models.ErrInvalidInput)
		}
		filter.Featured = featured
	}

	var err error
	if filter.Limit, err = parseNonNegative(q.Get("limit"), "limit"); err != nil {
		return filter, err
	}
	if filter.Offset, err = parseNonNegative(q.Get("offset"), "offset"); err != nil {
		return filter, err
	}

	return filter, nil
}

func parseNonNegative(value, name string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", models.ErrInvalidInput, name)
	}
	return n, nil
}
