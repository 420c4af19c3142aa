package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tododesk/internal/model"
)

// GetSubtasks retrieves all subtasks of a todo, ordered by sort_order.
func (s *SQLiteStore) GetSubtasks(ctx context.Context, todoID int64) ([]model.Subtask, error) {
	var subtasks []model.Subtask
	err := s.db.SelectContext(ctx, &subtasks,
		"SELECT * FROM subtasks WHERE todo_id = ? ORDER BY sort_order ASC", todoID)
	if err != nil {
		return nil, fmt.Errorf("querying subtasks for todo %d: %w", todoID, err)
	}
	return subtasks, nil
}

// GetSubtask retrieves a single subtask by ID. Returns nil without error
// when the ID does not exist.
func (s *SQLiteStore) GetSubtask(ctx context.Context, id int64) (*model.Subtask, error) {
	var sub model.Subtask
	err := s.db.GetContext(ctx, &sub, "SELECT * FROM subtasks WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting subtask %d: %w", id, err)
	}
	return &sub, nil
}

// CreateSubtask inserts a new subtask; sort_order is assigned per todo.
func (s *SQLiteStore) CreateSubtask(ctx context.Context, subtask model.Subtask) (*model.Subtask, error) {
	var sortOrder int
	if err := s.db.GetContext(ctx, &sortOrder,
		"SELECT COALESCE(MAX(sort_order) + 1, 0) FROM subtasks WHERE todo_id = ?",
		subtask.TodoID); err != nil {
		return nil, fmt.Errorf("getting next sort_order: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO subtasks (todo_id, title, completed, sort_order, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		subtask.TodoID, subtask.Title, boolToInt(subtask.Completed),
		sortOrder, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating subtask: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading subtask id: %w", err)
	}
	return s.GetSubtask(ctx, id)
}

// UpdateSubtask overwrites a subtask's title and completed state by ID.
// Returns nil without error when the ID does not exist.
func (s *SQLiteStore) UpdateSubtask(ctx context.Context, subtask model.Subtask) (*model.Subtask, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE subtasks SET title = ?, completed = ? WHERE id = ?",
		subtask.Title, boolToInt(subtask.Completed), subtask.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating subtask %d: %w", subtask.ID, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, nil
	}
	return s.GetSubtask(ctx, subtask.ID)
}

// ToggleSubtask flips a subtask's completed state.
func (s *SQLiteStore) ToggleSubtask(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE subtasks SET completed = CASE WHEN completed = 0 THEN 1 ELSE 0 END WHERE id = ?",
		id)
	if err != nil {
		return false, fmt.Errorf("toggling subtask %d: %w", id, err)
	}
	rows, _ := res.RowsAffected()
	return rows > 0, nil
}

// DeleteSubtask hard-deletes a subtask.
func (s *SQLiteStore) DeleteSubtask(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM subtasks WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting subtask %d: %w", id, err)
	}
	rows, _ := res.RowsAffected()
	return rows > 0, nil
}

// ReorderSubtasks rewrites sort_order to positional indexes in one
// transaction.
func (s *SQLiteStore) ReorderSubtasks(ctx context.Context, ids []int64) error {
	return s.reorderRows(ctx, "subtasks", ids)
}
