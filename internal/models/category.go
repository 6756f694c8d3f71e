package models

import (
	"errors"
	"regexp"
	"strings"
)

// Category is a taxonomy bucket annotated with the number of active events in it
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Count int    `json:"count"`
}

// CategoryRow is a category record as stored by the backend
type CategoryRow struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Slug        string `json:"slug" db:"slug"`
	Icon        string `json:"icon" db:"icon"`
	Description string `json:"description" db:"description"`
	SortOrder   int    `json:"sort_order" db:"sort_order"`

	// EventsCount is attached during aggregation, it is not a stored column
	EventsCount int `json:"events_count"`
}

// ToCategory maps an annotated row into the public Category shape
func (r *CategoryRow) ToCategory() Category {
	return Category{
		ID:    r.ID,
		Name:  r.Name,
		Icon:  r.Icon,
		Count: r.EventsCount,
	}
}

// EventCategoryRef is the category reference of an active event row.
// CategoryID is nil when the event has no category assigned.
type EventCategoryRef struct {
	CategoryID *string `json:"category_id" db:"category_id"`
}

var (
	// Slug validation regex: lowercase letters, numbers, and hyphens only
	slugRegex = regexp.MustCompile(`^[a-z0-9-]+$`)

	slugReplaceRegex = regexp.MustCompile(`[^a-z0-9]+`)
)

// Validate validates the category row before it is written
func (r *CategoryRow) Validate() error {
	if err := validateCategoryName(r.Name); err != nil {
		return err
	}

	if err := ValidateSlug(r.Slug); err != nil {
		return err
	}

	if len(r.Description) > 500 {
		return errors.New("category description must be less than 500 characters")
	}

	return nil
}

func validateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("category name is required")
	}

	if len(name) > 100 {
		return errors.New("category name must be less than 100 characters")
	}

	return nil
}

// ValidateSlug validates a category slug
func ValidateSlug(slug string) error {
	if slug == "" {
		return errors.New("category slug is required")
	}

	if len(slug) > 100 {
		return errors.New("category slug must be less than 100 characters")
	}

	if !slugRegex.MatchString(slug) {
		return errors.New("category slug can only contain lowercase letters, numbers, and hyphens")
	}

	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return errors.New("category slug cannot start or end with a hyphen")
	}

	if strings.Contains(slug, "--") {
		return errors.New("category slug cannot contain consecutive hyphens")
	}

	return nil
}

// GenerateSlug generates a URL-friendly slug from the category name
func GenerateSlug(name string) string {
	slug := strings.ToLower(name)
	slug = slugReplaceRegex.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
