package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"ticket-marketplace/internal/models"
)

// ErrCartScopeNotInitialized is returned when a cart operation runs outside an
// established cart scope: a nil or zero-value Cart, or a context without a cart.
var ErrCartScopeNotInitialized = errors.New("cart scope not initialized")

// CartOption configures a Cart
type CartOption func(*Cart)

// WithSeatDeduplication drops seats whose ID is already on the cart line
// instead of counting them twice.
func WithSeatDeduplication() CartOption {
	return func(c *Cart) {
		c.dedupeSeats = true
	}
}

// Cart holds at most one line per event. Every mutation replaces the line slice
// under the write lock, so readers observe either the old or the new state.
type Cart struct {
	mu          sync.RWMutex
	items       []models.CartItem
	version     uint64
	initialized bool
	dedupeSeats bool
}

// NewCart creates an empty cart
func NewCart(opts ...CartOption) *Cart {
	c := &Cart{initialized: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RestoreCart creates a cart from previously saved lines. Quantity and TotalPrice
// are recomputed from the seats; lines without seats or sharing an event id with
// an earlier line are dropped.
func RestoreCart(items []models.CartItem, opts ...CartOption) *Cart {
	c := NewCart(opts...)

	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if item.EventID == "" || len(item.Seats) == 0 || seen[item.EventID] {
			continue
		}
		seen[item.EventID] = true
		c.items = append(c.items, newCartItem(item.Event, copySeats(item.Seats)))
	}
	return c
}

func (c *Cart) ready() error {
	if c == nil || !c.initialized {
		return ErrCartScopeNotInitialized
	}
	return nil
}

// AddToCart adds seats for event. An existing line for the event gets the seats
// appended; otherwise a new line is created.
func (c *Cart) AddToCart(event models.Event, seats []models.Seat) error {
	if err := c.ready(); err != nil {
		return err
	}
	if event.ID == "" {
		return fmt.Errorf("%w: event id is required", models.ErrInvalidInput)
	}
	if len(seats) == 0 {
		return fmt.Errorf("%w: at least one seat is required", models.ErrInvalidInput)
	}
	for _, seat := range seats {
		if seat.Price < 0 {
			return fmt.Errorf("%w: seat %s has a negative price", models.ErrInvalidInput, seat.ID)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]models.CartItem, len(c.items), len(c.items)+1)
	copy(next, c.items)

	idx := indexOfEvent(next, event.ID)
	if idx < 0 {
		added := copySeats(seats)
		if c.dedupeSeats {
			added = appendNewSeats(nil, added)
		}
		next = append(next, newCartItem(event, added))
	} else {
		existing := next[idx]
		merged := make([]models.Seat, 0, len(existing.Seats)+len(seats))
		merged = append(merged, existing.Seats...)
		if c.dedupeSeats {
			merged = appendNewSeats(merged, seats)
		} else {
			merged = append(merged, seats...)
		}
		next[idx] = newCartItem(existing.Event, merged)
	}

	c.items = next
	c.version++
	return nil
}

// RemoveFromCart deletes the line for eventID. Removing an absent event is a no-op.
func (c *Cart) RemoveFromCart(eventID string) error {
	if err := c.ready(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	idx := indexOfEvent(c.items, eventID)
	if idx < 0 {
		return nil
	}

	next := make([]models.CartItem, 0, len(c.items)-1)
	next = append(next, c.items[:idx]...)
	next = append(next, c.items[idx+1:]...)

	c.items = next
	c.version++
	return nil
}

// ClearCart empties the cart
func (c *Cart) ClearCart() error {
	if err := c.ready(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.version++
	return nil
}

// TotalPrice returns the sum of every line's TotalPrice in cents
func (c *Cart) TotalPrice() (int, error) {
	if err := c.ready(); err != nil {
		return 0, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, item := range c.items {
		total += item.TotalPrice
	}
	return total, nil
}

// TotalItems returns the sum of every line's Quantity
func (c *Cart) TotalItems() (int, error) {
	if err := c.ready(); err != nil {
		return 0, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total, nil
}

// Items returns a copy of the current cart lines in insertion order
func (c *Cart) Items() ([]models.CartItem, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]models.CartItem, len(c.items))
	for i, item := range c.items {
		item.Seats = copySeats(item.Seats)
		items[i] = item
	}
	return items, nil
}

// Version increases by one on every mutation. The cart scope uses it to decide
// whether the session needs saving.
func (c *Cart) Version() uint64 {
	if c == nil {
		return 0
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

func newCartItem(event models.Event, seats []models.Seat) models.CartItem {
	return models.CartItem{
		EventID:    event.ID,
		Event:      event,
		Seats:      seats,
		Quantity:   len(seats),
		TotalPrice: models.SumSeatPrices(seats),
	}
}

func indexOfEvent(items []models.CartItem, eventID string) int {
	for i := range items {
		if items[i].EventID == eventID {
			return i
		}
	}
	return -1
}

// appendNewSeats appends the seats from add whose ID is not already in dst
func appendNewSeats(dst []models.Seat, add []models.Seat) []models.Seat {
	seen := make(map[string]bool, len(dst)+len(add))
	for _, seat := range dst {
		seen[seat.ID] = true
	}
	for _, seat := range add {
		if seen[seat.ID] {
			continue
		}
		seen[seat.ID] = true
		dst = append(dst, seat)
	}
	return dst
}

func copySeats(seats []models.Seat) []models.Seat {
	if seats == nil {
		return nil
	}
	out := make([]models.Seat, len(seats))
	copy(out, seats)
	return out
}

type cartContextKey struct{}

// WithCart returns a context carrying cart as the active cart scope
func WithCart(ctx context.Context, cart *Cart) context.Context {
	return context.WithValue(ctx, cartContextKey{}, cart)
}

// CartFromContext returns the cart of the active scope, or
// ErrCartScopeNotInitialized when no scope was established.
func CartFromContext(ctx context.Context) (*Cart, error) {
	cart, ok := ctx.Value(cartContextKey{}).(*Cart)
	if !ok || cart == nil {
		return nil, ErrCartScopeNotInitialized
	}
	return cart, nil
}
