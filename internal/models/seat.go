package models

import "fmt"

// SeatStatus represents the booking state of a seat
type SeatStatus string

const (
	SeatAvailable   SeatStatus = "available"
	SeatSelected    SeatStatus = "selected"
	SeatUnavailable SeatStatus = "unavailable"
)

// Seat represents a single seat listing for an event
type Seat struct {
	ID      string     `json:"id" db:"id"`
	Section string     `json:"section" db:"section"`
	Row     string     `json:"row" db:"row_label"`
	Number  int        `json:"number" db:"seat_number"`
	Price   int        `json:"price" db:"price"` // in cents
	Status  SeatStatus `json:"status" db:"status"`
}

// IsAvailable returns true if the seat can be added to a cart
func (s *Seat) IsAvailable() bool {
	return s.Status == SeatAvailable
}

// Label returns a human readable seat location
func (s *Seat) Label() string {
	return fmt.Sprintf("Section %s, Row %s, Seat %d", s.Section, s.Row, s.Number)
}

// SumSeatPrices returns the total price of the given seats in cents
func SumSeatPrices(seats []Seat) int {
	total := 0
	for _, seat := range seats {
		total += seat.Price
	}
	return total
}
