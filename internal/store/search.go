package store

import (
	"context"
	"fmt"

	"tododesk/internal/model"
)

const defaultSearchLimit = 20

// GlobalSearch runs independent substring searches across todos
// (title, notes), persons (name, email, company), and projects (name).
// Each list is capped at limit separately; results are never merged or
// ranked against each other.
func (s *SQLiteStore) GlobalSearch(ctx context.Context, query string, limit int) (*model.SearchResults, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	pattern := "%" + query + "%"
	results := &model.SearchResults{}

	rows, err := s.db.QueryxContext(ctx,
		todoSelect+` WHERE t.deleted_at IS NULL AND (t.title LIKE ? OR t.notes LIKE ?) LIMIT ?`,
		pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("searching todos: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var t model.TodoWithRelations
		if err := rows.StructScan(&t); err != nil {
			return nil, fmt.Errorf("scanning todo row: %w", err)
		}
		results.Todos = append(results.Todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.db.SelectContext(ctx, &results.Persons, `
		SELECT * FROM persons
		WHERE name LIKE ? OR email LIKE ? OR company LIKE ?
		ORDER BY sort_order ASC LIMIT ?`,
		pattern, pattern, pattern, limit); err != nil {
		return nil, fmt.Errorf("searching persons: %w", err)
	}

	if err := s.db.SelectContext(ctx, &results.Projects, `
		SELECT * FROM projects
		WHERE deleted_at IS NULL AND name LIKE ?
		ORDER BY sort_order ASC LIMIT ?`,
		pattern, limit); err != nil {
		return nil, fmt.Errorf("searching projects: %w", err)
	}

	return results, nil
}
