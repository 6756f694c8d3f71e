package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"ticket-marketplace/internal/cache"
	"ticket-marketplace/internal/logger"
	"ticket-marketplace/internal/models"
)

const (
	categoryListKey    = "categories:list"
	categorySlugPrefix = "categories:slug:"
	categoryKeyPattern = "categories:*"
)

// CategorySlugKey returns the cache key for a single category lookup
func CategorySlugKey(slug string) string {
	return categorySlugPrefix + slug
}

// CachedCategoryService memoizes a CategoryReader with cache-aside reads.
// Cache failures are logged and fall through to the wrapped reader; errors from
// the reader are never cached.
type CachedCategoryService struct {
	next  CategoryReader
	cache cache.Service
	ttl   time.Duration
}

// NewCachedCategoryService wraps next with the given cache and TTL
func NewCachedCategoryService(next CategoryReader, c cache.Service, ttl time.Duration) *CachedCategoryService {
	if c == nil {
		c = cache.Noop{}
	}
	return &CachedCategoryService{next: next, cache: c, ttl: ttl}
}

// ListCategories returns the cached category list, recomputing it on a miss
func (s *CachedCategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if s.lookup(ctx, categoryListKey, &categories) {
		return categories, nil
	}

	categories, err := s.next.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	s.store(ctx, categoryListKey, categories)
	return categories, nil
}

// GetCategoryBySlug returns the cached category for slug. Empty slugs bypass the cache.
func (s *CachedCategoryService) GetCategoryBySlug(ctx context.Context, slug string) (*models.CategoryRow, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, nil
	}

	key := CategorySlugKey(slug)

	var row models.CategoryRow
	if s.lookup(ctx, key, &row) {
		return &row, nil
	}

	found, err := s.next.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if found != nil {
		s.store(ctx, key, found)
	}
	return found, nil
}

// Invalidate drops every cached category entry
func (s *CachedCategoryService) Invalidate(ctx context.Context) error {
	return s.cache.DeletePattern(ctx, categoryKeyPattern)
}

func (s *CachedCategoryService) lookup(ctx context.Context, key string, dest interface{}) bool {
	err := s.cache.Get(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Warnf(ctx, "category cache read failed for %s: %v", key, err)
	}
	return false
}

func (s *CachedCategoryService) store(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		logger.Warnf(ctx, "category cache write failed for %s: %v", key, err)
	}
}
