package models

import (
	"strings"
)

// EventCategory is the taxonomy bucket stored on an event row
type EventCategory string

const (
	CategoryConcerts EventCategory = "concerts"
	CategorySports   EventCategory = "sports"
	CategoryTheater  EventCategory = "theater"
	CategoryComedy   EventCategory = "comedy"
)

// IsValid reports whether c is one of the known event categories
func (c EventCategory) IsValid() bool {
	switch c {
	case CategoryConcerts, CategorySports, CategoryTheater, CategoryComedy:
		return true
	}
	return false
}

// ParseEventCategory normalizes user input into an EventCategory
func ParseEventCategory(s string) (EventCategory, error) {
	c := EventCategory(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", ErrInvalidInput
	}
	return c, nil
}

// Event represents a ticketed event. Events are immutable once fetched.
type Event struct {
	ID          string        `json:"id" db:"id"`
	Title       string        `json:"title" db:"title"`
	Description string        `json:"description,omitempty" db:"description"`
	Date        string        `json:"date" db:"event_date"`
	Time        string        `json:"time" db:"event_time"`
	Venue       string        `json:"venue" db:"venue"`
	City        string        `json:"city" db:"city"`
	State       string        `json:"state" db:"state"`
	Category    EventCategory `json:"category" db:"category"`
	PriceFrom   int           `json:"price_from" db:"price_from"` // in cents
	PriceTo     int           `json:"price_to" db:"price_to"`     // in cents
	Featured    bool          `json:"featured,omitempty" db:"featured"`
	ImageURL    string        `json:"image_url,omitempty" db:"image_url"`
}

// HasDescription returns true if the event has a description
func (e *Event) HasDescription() bool {
	return strings.TrimSpace(e.Description) != ""
}

// Location formats the venue, city and state for display
func (e *Event) Location() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{e.Venue, e.City, e.State} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// EventFilter narrows an event listing
type EventFilter struct {
	Category EventCategory
	City     string
	Featured bool
	Limit    int
	Offset   int
}

// City is a distinct city with active events
type City struct {
	Name       string `json:"name" db:"city"`
	State      string `json:"state" db:"state"`
	EventCount int    `json:"event_count" db:"event_count"`
}
