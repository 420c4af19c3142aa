package store

import (
	"context"
	"fmt"
	"time"

	"tododesk/internal/model"
)

// GetMilestones retrieves all non-deleted milestone todos, ordered by
// milestone date then sort_order.
func (s *SQLiteStore) GetMilestones(ctx context.Context) ([]model.TodoWithRelations, error) {
	rows, err := s.db.QueryxContext(ctx,
		todoSelect+` WHERE t.deleted_at IS NULL AND t.type = ?
		ORDER BY t.milestone_date ASC, t.sort_order ASC`,
		model.TodoTypeMilestone)
	if err != nil {
		return nil, fmt.Errorf("querying milestones: %w", err)
	}
	defer rows.Close()

	var milestones []model.TodoWithRelations
	for rows.Next() {
		var t model.TodoWithRelations
		if err := rows.StructScan(&t); err != nil {
			return nil, fmt.Errorf("scanning milestone row: %w", err)
		}
		milestones = append(milestones, t)
	}
	return milestones, rows.Err()
}

// GetMilestoneTodos retrieves the non-deleted todos assigned to a
// milestone via parent_id.
func (s *SQLiteStore) GetMilestoneTodos(ctx context.Context, milestoneID int64) ([]model.TodoWithRelations, error) {
	rows, err := s.db.QueryxContext(ctx,
		todoSelect+` WHERE t.deleted_at IS NULL AND t.parent_id = ?
		ORDER BY t.sort_order ASC, t.created_at DESC`,
		milestoneID)
	if err != nil {
		return nil, fmt.Errorf("querying milestone todos: %w", err)
	}
	defer rows.Close()

	var todos []model.TodoWithRelations
	for rows.Next() {
		var t model.TodoWithRelations
		if err := rows.StructScan(&t); err != nil {
			return nil, fmt.Errorf("scanning todo row: %w", err)
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// AssignToMilestone sets a todo's parent_id to the given milestone.
// A bad milestone ID surfaces as a constraint error from the schema.
func (s *SQLiteStore) AssignToMilestone(ctx context.Context, todoID, milestoneID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE todos SET parent_id = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL",
		milestoneID, time.Now().UTC(), todoID,
	)
	if err != nil {
		return false, fmt.Errorf("assigning todo %d to milestone %d: %w", todoID, milestoneID, err)
	}
	rows, _ := res.RowsAffected()
	return rows > 0, nil
}

// UnassignFromMilestone clears a todo's parent_id.
func (s *SQLiteStore) UnassignFromMilestone(ctx context.Context, todoID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE todos SET parent_id = NULL, updated_at = ? WHERE id = ? AND deleted_at IS NULL",
		time.Now().UTC(), todoID,
	)
	if err != nil {
		return false, fmt.Errorf("unassigning todo %d from milestone: %w", todoID, err)
	}
	rows, _ := res.RowsAffected()
	return rows > 0, nil
}
