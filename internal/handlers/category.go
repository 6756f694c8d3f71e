package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"ticket-marketplace/internal/models"
	"ticket-marketplace/internal/services"
)

// CategoryHandler serves category listings
type CategoryHandler struct {
	categories services.CategoryReader
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categories services.CategoryReader) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// ListCategories returns every category with its active event count
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}

	writeJSON(w, http.StatusOK, categories)
}

// GetCategory returns a single category by slug
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	row, err := h.categories.GetCategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if row == nil {
		writeError(w, r, models.ErrCategoryNotFound)
		return
	}

	writeJSON(w, http.StatusOK, row)
}
