package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tododesk/internal/model"
)

const defaultProjectColor = "#0f4c75"

// GetAllProjects retrieves all non-deleted projects ordered by sort_order.
func (s *SQLiteStore) GetAllProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	err := s.db.SelectContext(ctx, &projects,
		"SELECT * FROM projects WHERE deleted_at IS NULL ORDER BY sort_order ASC")
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	return projects, nil
}

// GetDeletedProjects retrieves soft-deleted projects, most recently
// deleted first.
func (s *SQLiteStore) GetDeletedProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	err := s.db.SelectContext(ctx, &projects,
		"SELECT * FROM projects WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC")
	if err != nil {
		return nil, fmt.Errorf("querying deleted projects: %w", err)
	}
	return projects, nil
}

// GetProject retrieves a single project by ID. Returns nil without error
// when the ID does not exist.
func (s *SQLiteStore) GetProject(ctx context.Context, id int64) (*model.Project, error) {
	var p model.Project
	err := s.db.GetContext(ctx, &p, "SELECT * FROM projects WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting project %d: %w", id, err)
	}
	return &p, nil
}

// CreateProject inserts a new project with the next sort_order.
func (s *SQLiteStore) CreateProject(ctx context.Context, project model.Project) (*model.Project, error) {
	if project.Color == "" {
		project.Color = defaultProjectColor
	}
	now := time.Now().UTC()

	var sortOrder int
	if err := s.db.GetContext(ctx, &sortOrder,
		"SELECT COALESCE(MAX(sort_order) + 1, 0) FROM projects"); err != nil {
		return nil, fmt.Errorf("getting next sort_order: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (name, color, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		project.Name, project.Color, sortOrder, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading project id: %w", err)
	}
	return s.GetProject(ctx, id)
}

// UpdateProject overwrites a project's name and color by ID. Returns nil
// without error when the ID does not exist.
func (s *SQLiteStore) UpdateProject(ctx context.Context, project model.Project) (*model.Project, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE projects SET name = ?, color = ?, updated_at = ? WHERE id = ?",
		project.Name, project.Color, time.Now().UTC(), project.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating project %d: %w", project.ID, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, nil
	}
	return s.GetProject(ctx, project.ID)
}

// DeleteProject soft-deletes a project. Its todos are detached
// (project_id set to NULL), never cascade-deleted. One transaction.
func (s *SQLiteStore) DeleteProject(ctx context.Context, id int64) (bool, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx,
		"UPDATE todos SET project_id = NULL, updated_at = ? WHERE project_id = ?",
		now, id); err != nil {
		return false, fmt.Errorf("detaching todos of project %d: %w", id, err)
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE projects SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL",
		now, now, id)
	if err != nil {
		return false, fmt.Errorf("deleting project %d: %w", id, err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return false, nil
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing project delete: %w", err)
	}
	return true, nil
}

// RestoreProject brings a soft-deleted project back. Detached todos stay
// in the inbox; the old assignments are not reconstructed.
func (s *SQLiteStore) RestoreProject(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE projects SET deleted_at = NULL, updated_at = ? WHERE id = ? AND deleted_at IS NOT NULL",
		time.Now().UTC(), id,
	)
	if err != nil {
		return false, fmt.Errorf("restoring project %d: %w", id, err)
	}
	rows, _ := res.RowsAffected()
	return rows > 0, nil
}

// PurgeProject permanently removes a project.
func (s *SQLiteStore) PurgeProject(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("purging project %d: %w", id, err)
	}
	rows, _ := res.RowsAffected()
	return rows > 0, nil
}

// ReorderProjects rewrites sort_order to positional indexes in one
// transaction.
func (s *SQLiteStore) ReorderProjects(ctx context.Context, ids []int64) error {
	return s.reorderRows(ctx, "projects", ids)
}
