package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"ticket-marketplace/internal/logger"
	"ticket-marketplace/internal/models"
	"ticket-marketplace/internal/services"
)

// maxCartBody bounds the add-to-cart request body
const maxCartBody = 64 << 10

// CartHandler handles the session cart
type CartHandler struct {
	events    services.EventBrowser
	validator *validator.Validate
}

// NewCartHandler creates a new cart handler
func NewCartHandler(events services.EventBrowser) *CartHandler {
	return &CartHandler{
		events:    events,
		validator: validator.New(),
	}
}

// AddToCartRequest is the body of POST /api/cart/items
type AddToCartRequest struct {
	EventID string   `json:"event_id" validate:"required,max=64"`
	SeatIDs []string `json:"seat_ids" validate:"required,min=1,max=50,unique,dive,required,max=64"`
}

// CartResponse is the cart as returned to clients
type CartResponse struct {
	Items      []models.CartItem `json:"items"`
	TotalPrice int               `json:"total_price"` // in cents
	TotalItems int               `json:"total_items"`
}

// GetCart returns the current cart with its totals
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := services.CartFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.writeCart(w, r, http.StatusOK, cart)
}

// AddItems adds available seats of one event to the cart
func (h *CartHandler) AddItems(w http.ResponseWriter, r *http.Request) {
	cart, err := services.CartFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req AddToCartRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCartBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: malformed request body", models.ErrInvalidInput))
		return
	}

	req.EventID = strings.TrimSpace(req.EventID)
	if err := h.validator.Struct(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", models.ErrInvalidInput, err))
		return
	}

	event, seats, err := h.events.SelectSeats(r.Context(), req.EventID, req.SeatIDs)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := cart.AddToCart(*event, seats); err != nil {
		writeError(w, r, err)
		return
	}

	logger.Debugf(r.Context(), "Added %d seats for event %s to cart", len(seats), event.ID)
	h.writeCart(w, r, http.StatusCreated, cart)
}

// RemoveItem removes an event's line from the cart
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cart, err := services.CartFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := cart.RemoveFromCart(chi.URLParam(r, "eventID")); err != nil {
		writeError(w, r, err)
		return
	}
	h.writeCart(w, r, http.StatusOK, cart)
}

// ClearCart empties the cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cart, err := services.CartFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := cart.ClearCart(); err != nil {
		writeError(w, r, err)
		return
	}
	h.writeCart(w, r, http.StatusOK, cart)
}

func (h *CartHandler) writeCart(w http.ResponseWriter, r *http.Request, status int, cart *services.Cart) {
	items, err := cart.Items()
	if err != nil {
		writeError(w, r, err)
		return
	}
	totalPrice, err := cart.TotalPrice()
	if err != nil {
		writeError(w, r, err)
		return
	}
	totalItems, err := cart.TotalItems()
	if err != nil {
		writeError(w, r, err)
		return
	}
	if items == nil {
		items = []models.CartItem{}
	}

	writeJSON(w, status, CartResponse{
		Items:      items,
		TotalPrice: totalPrice,
		TotalItems: totalItems,
	})
}
