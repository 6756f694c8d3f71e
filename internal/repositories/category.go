package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"ticket-marketplace/internal/models"
)

// CategoryRepository reads categories and active event references from Postgres
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

const categoryColumns = `id, name, slug, icon, description, sort_order`

// FetchCategories returns all category rows ordered by sort_order ascending
func (r *CategoryRepository) FetchCategories(ctx context.Context) ([]models.CategoryRow, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY sort_order ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	defer rows.Close()

	var categories []models.CategoryRow
	for rows.Next() {
		row, err := scanCategoryRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}

// FetchActiveEventCategoryRefs returns the category reference of every active event
func (r *CategoryRepository) FetchActiveEventCategoryRefs(ctx context.Context) ([]models.EventCategoryRef, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT category_id FROM events WHERE is_active = true`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event categories: %w", err)
	}
	defer rows.Close()

	var refs []models.EventCategoryRef
	for rows.Next() {
		var categoryID sql.NullString
		if err := rows.Scan(&categoryID); err != nil {
			return nil, fmt.Errorf("failed to scan event category: %w", err)
		}

		ref := models.EventCategoryRef{}
		if categoryID.Valid {
			id := categoryID.String
			ref.CategoryID = &id
		}
		refs = append(refs, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate event categories: %w", err)
	}

	return refs, nil
}

// FetchCategoryBySlug returns the single category matching slug.
// Zero matches yields models.ErrCategoryNotFound, more than one models.ErrMultipleCategories.
func (r *CategoryRepository) FetchCategoryBySlug(ctx context.Context, slug string) (*models.CategoryRow, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE slug = $1 LIMIT 2`

	rows, err := r.db.QueryContext(ctx, query, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category %q: %w", slug, err)
	}
	defer rows.Close()

	var matches []models.CategoryRow
	for rows.Next() {
		row, err := scanCategoryRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		matches = append(matches, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, models.ErrCategoryNotFound
	case 1:
		return &matches[0], nil
	default:
		return nil, models.ErrMultipleCategories
	}
}

// CreateCategory inserts a category row, used by the seed tool
func (r *CategoryRepository) CreateCategory(ctx context.Context, row *models.CategoryRow) error {
	if err := row.Validate(); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, slug = EXCLUDED.slug, icon = EXCLUDED.icon,
			description = EXCLUDED.description, sort_order = EXCLUDED.sort_order`

	_, err := r.db.ExecContext(ctx, query, row.ID, row.Name, row.Slug, row.Icon, row.Description, row.SortOrder)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCategoryRow(s scanner) (models.CategoryRow, error) {
	var row models.CategoryRow
	err := s.Scan(&row.ID, &row.Name, &row.Slug, &row.Icon, &row.Description, &row.SortOrder)
	return row, err
}
