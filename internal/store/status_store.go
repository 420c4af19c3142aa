package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tododesk/internal/model"
)

const defaultStatusColor = "#6b7280"

// GetAllStatuses retrieves all statuses ordered by sort_order.
func (s *SQLiteStore) GetAllStatuses(ctx context.Context) ([]model.Status, error) {
	var statuses []model.Status
	err := s.db.SelectContext(ctx, &statuses,
		"SELECT * FROM statuses ORDER BY sort_order ASC")
	if err != nil {
		return nil, fmt.Errorf("querying statuses: %w", err)
	}
	return statuses, nil
}

// GetStatus retrieves a single status by ID. Returns nil without error
// when the ID does not exist.
func (s *SQLiteStore) GetStatus(ctx context.Context, id int64) (*model.Status, error) {
	var st model.Status
	err := s.db.GetContext(ctx, &st, "SELECT * FROM statuses WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting status %d: %w", id, err)
	}
	return &st, nil
}

// CreateStatus inserts a new status with the next sort_order.
func (s *SQLiteStore) CreateStatus(ctx context.Context, status model.Status) (*model.Status, error) {
	if status.Color == "" {
		status.Color = defaultStatusColor
	}
	if status.SortOrder == 0 {
		if err := s.db.GetContext(ctx, &status.SortOrder,
			"SELECT COALESCE(MAX(sort_order) + 1, 0) FROM statuses"); err != nil {
			return nil, fmt.Errorf("getting next sort_order: %w", err)
		}
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO statuses (name, color, sort_order, created_at)
		VALUES (?, ?, ?, ?)`,
		status.Name, status.Color, status.SortOrder, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating status: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading status id: %w", err)
	}
	return s.GetStatus(ctx, id)
}

// UpdateStatus overwrites a status's name and color by ID. Returns nil
// without error when the ID does not exist.
func (s *SQLiteStore) UpdateStatus(ctx context.Context, status model.Status) (*model.Status, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE statuses SET name = ?, color = ? WHERE id = ?",
		status.Name, status.Color, status.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating status %d: %w", status.ID, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, nil
	}
	return s.GetStatus(ctx, status.ID)
}

// DeleteStatus hard-deletes a status. Todos referencing it get status_id
// set to NULL by the schema.
func (s *SQLiteStore) DeleteStatus(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM statuses WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting status %d: %w", id, err)
	}
	rows, _ := res.RowsAffected()
	return rows > 0, nil
}

// ReorderStatuses rewrites sort_order to positional indexes in one
// transaction.
func (s *SQLiteStore) ReorderStatuses(ctx context.Context, ids []int64) error {
	return s.reorderRows(ctx, "statuses", ids)
}
