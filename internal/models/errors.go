package models

import "errors"

// Common errors used throughout the application
var (
	ErrEventNotFound      = errors.New("event not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrMultipleCategories = errors.New("multiple categories match slug")
	ErrSeatNotFound       = errors.New("seat not found")
	ErrSeatUnavailable    = errors.New("seat is not available")
	ErrInvalidInput       = errors.New("invalid input")
)
