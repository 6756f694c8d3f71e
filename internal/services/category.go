package services

import (
	"context"
	"strings"

	"ticket-marketplace/internal/models"

	"golang.org/x/sync/errgroup"
)

// CategoryBackend is the remote store the category aggregator reads from
type CategoryBackend interface {
	FetchCategories(ctx context.Context) ([]models.CategoryRow, error)
	FetchActiveEventCategoryRefs(ctx context.Context) ([]models.EventCategoryRef, error)
	FetchCategoryBySlug(ctx context.Context, slug string) (*models.CategoryRow, error)
}

// CategoryReader is implemented by the aggregator and by its cached wrapper
type CategoryReader interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.CategoryRow, error)
}

// CategoryService annotates categories with live active-event counts.
// It keeps no state between calls; every call recomputes from the backend.
type CategoryService struct {
	backend CategoryBackend
}

// NewCategoryService creates a new category service
func NewCategoryService(backend CategoryBackend) *CategoryService {
	return &CategoryService{backend: backend}
}

// ListCategories returns every category in sort order with the number of active events in it.
// Both backend reads run concurrently; if either fails its error is returned
// unchanged along with no categories.
func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var (
		rows []models.CategoryRow
		refs []models.EventCategoryRef
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.backend.FetchCategories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		refs, err = s.backend.FetchActiveEventCategoryRefs(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	counts := CountEventsByCategory(refs)

	categories := make([]models.Category, 0, len(rows))
	for i := range rows {
		rows[i].EventsCount = counts[rows[i].ID]
		categories = append(categories, rows[i].ToCategory())
	}

	return categories, nil
}

// GetCategoryBySlug returns the raw category row for slug without an event count.
// An empty slug returns (nil, nil) and does not contact the backend.
func (s *CategoryService) GetCategoryBySlug(ctx context.Context, slug string) (*models.CategoryRow, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, nil
	}

	row, err := s.backend.FetchCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return row, nil
}

// CountEventsByCategory counts refs per category id in one pass. Nil refs are skipped.
func CountEventsByCategory(refs []models.EventCategoryRef) map[string]int {
	counts := make(map[string]int)
	for _, ref := range refs {
		if ref.CategoryID == nil {
			continue
		}
		counts[*ref.CategoryID]++
	}
	return counts
}
