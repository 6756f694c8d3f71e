package models

// CartItem is one event's aggregated seat selection within a cart.
// Quantity and TotalPrice are derived from Seats and must always agree with it.
type CartItem struct {
	EventID    string `json:"event_id"`
	Event      Event  `json:"event"`
	Seats      []Seat `json:"seats"`
	Quantity   int    `json:"quantity"`
	TotalPrice int    `json:"total_price"` // in cents
}

// CartSnapshot is the serialized form of a cart kept in the session
type CartSnapshot struct {
	Items     []CartItem `json:"items"`
	ExpiresAt int64      `json:"expires_at"` // Unix timestamp
}
