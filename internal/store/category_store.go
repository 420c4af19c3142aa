package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tododesk/internal/model"
)

const defaultCategoryColor = "#9b59b6"

// GetAllCategories retrieves all categories ordered by sort_order.
func (s *SQLiteStore) GetAllCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := s.db.SelectContext(ctx, &categories,
		"SELECT * FROM categories ORDER BY sort_order ASC")
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	return categories, nil
}

// GetCategory retrieves a single category by ID. Returns nil without error
// when the ID does not exist.
func (s *SQLiteStore) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	var c model.Category
	err := s.db.GetContext(ctx, &c, "SELECT * FROM categories WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting category %d: %w", id, err)
	}
	return &c, nil
}

// CreateCategory inserts a new category with the next sort_order.
func (s *SQLiteStore) CreateCategory(ctx context.Context, category model.Category) (*model.Category, error) {
	if category.Color == "" {
		category.Color = defaultCategoryColor
	}

	var sortOrder int
	if err := s.db.GetContext(ctx, &sortOrder,
		"SELECT COALESCE(MAX(sort_order) + 1, 0) FROM categories"); err != nil {
		return nil, fmt.Errorf("getting next sort_order: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (name, symbol, color, sort_order, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		category.Name, category.Symbol, category.Color, sortOrder, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading category id: %w", err)
	}
	return s.GetCategory(ctx, id)
}

// UpdateCategory overwrites a category's name, symbol, and color by ID.
// Returns nil without error when the ID does not exist.
func (s *SQLiteStore) UpdateCategory(ctx context.Context, category model.Category) (*model.Category, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE categories SET name = ?, symbol = ?, color = ? WHERE id = ?",
		category.Name, category.Symbol, category.Color, category.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating category %d: %w", category.ID, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, nil
	}
	return s.GetCategory(ctx, category.ID)
}

// DeleteCategory hard-deletes a category. Todos referencing it get
// category_id set to NULL by the schema.
func (s *SQLiteStore) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting category %d: %w", id, err)
	}
	rows, _ := res.RowsAffected()
	return rows > 0, nil
}

// ReorderCategories rewrites sort_order to positional indexes in one
// transaction.
func (s *SQLiteStore) ReorderCategories(ctx context.Context, ids []int64) error {
	return s.reorderRows(ctx, "categories", ids)
}
