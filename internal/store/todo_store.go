package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tododesk/internal/model"
)

// todoSelect is the enrichment query shared by all todo reads: the row plus
// display fields from related entities and subtask counts, assembled at
// read time and never stored.
const todoSelect = `
SELECT t.*,
       p.name AS project_name, p.color AS project_color,
       c.name AS category_name, c.symbol AS category_symbol,
       s.name AS status_name, s.color AS status_color,
       (SELECT COUNT(*) FROM subtasks sub WHERE sub.todo_id = t.id) AS subtask_count,
       (SELECT COUNT(*) FROM subtasks sub WHERE sub.todo_id = t.id AND sub.completed = 1) AS subtask_done_count
FROM todos t
LEFT JOIN projects p ON t.project_id = p.id
LEFT JOIN categories c ON t.category_id = c.id
LEFT JOIN statuses s ON t.status_id = s.id`

// TodoScope selects which todos a query sees: everything non-deleted,
// the inbox (no project), the trash, or a single project.
type TodoScope struct {
	projectID *int64
	inbox     bool
	trash     bool
}

// ScopeAll covers all non-deleted todos.
func ScopeAll() TodoScope { return TodoScope{} }

// ScopeInbox covers non-deleted todos without a project.
func ScopeInbox() TodoScope { return TodoScope{inbox: true} }

// ScopeTrash covers soft-deleted todos only.
func ScopeTrash() TodoScope { return TodoScope{trash: true} }

// ScopeProject covers non-deleted todos of one project.
func ScopeProject(id int64) TodoScope { return TodoScope{projectID: &id} }

// GetAllTodos retrieves todos in the given scope. Ordering is sort_order
// ascending with created_at descending as tie-break, except the trash,
// which orders by deletion time descending.
func (s *SQLiteStore) GetAllTodos(ctx context.Context, scope TodoScope) ([]model.TodoWithRelations, error) {
	query := todoSelect
	var args []interface{}

	switch {
	case scope.trash:
		query += " WHERE t.deleted_at IS NOT NULL ORDER BY t.deleted_at DESC"
	case scope.inbox:
		query += " WHERE t.deleted_at IS NULL AND t.project_id IS NULL" +
			" ORDER BY t.sort_order ASC, t.created_at DESC"
	case scope.projectID != nil:
		query += " WHERE t.deleted_at IS NULL AND t.project_id = ?" +
			" ORDER BY t.sort_order ASC, t.created_at DESC"
		args = append(args, *scope.projectID)
	default:
		query += " WHERE t.deleted_at IS NULL ORDER BY t.sort_order ASC, t.created_at DESC"
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying todos: %w", err)
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

// GetTodo retrieves a single todo by ID. Returns nil without error when the
// ID does not exist.
func (s *SQLiteStore) GetTodo(ctx context.Context, id int64) (*model.TodoWithRelations, error) {
	var t model.TodoWithRelations
	err := s.db.QueryRowxContext(ctx, todoSelect+" WHERE t.id = ?", id).StructScan(&t)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting todo %d: %w", id, err)
	}
	return &t, nil
}

// CreateTodo inserts a new todo, applying defaults for omitted optional
// fields. sort_order becomes max(existing)+1, or 0 for the first row.
func (s *SQLiteStore) CreateTodo(ctx context.Context, todo model.Todo) (*model.TodoWithRelations, error) {
	if todo.Type == "" {
		todo.Type = model.TodoTypeTodo
	}
	if todo.RecurrenceInterval < 1 {
		todo.RecurrenceInterval = 1
	}
	now := time.Now().UTC()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	var sortOrder int
	if err := s.db.GetContext(ctx, &sortOrder,
		"SELECT COALESCE(MAX(sort_order) + 1, 0) FROM todos"); err != nil {
		return nil, fmt.Errorf("getting next sort_order: %w", err)
	}
	todo.SortOrder = sortOrder

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO todos (
			title, notes, notes_sensitive, start_date, end_date, completed,
			sort_order, importance, project_id, category_id, status_id,
			parent_id, type, milestone_date,
			recurrence_type, recurrence_interval, recurrence_end_date,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		todo.Title, todo.Notes, boolToInt(todo.NotesSensitive),
		todo.StartDate, todo.EndDate, boolToInt(todo.Completed),
		todo.SortOrder, todo.Importance, todo.ProjectID, todo.CategoryID,
		todo.StatusID, todo.ParentID, todo.Type, todo.MilestoneDate,
		todo.RecurrenceType, todo.RecurrenceInterval, todo.RecurrenceEndDate,
		todo.CreatedAt, todo.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating todo: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading todo id: %w", err)
	}
	return s.GetTodo(ctx, id)
}

// UpdateTodo overwrites an existing todo's editable fields by ID and
// touches updated_at. Returns nil without error when the ID does not exist.
func (s *SQLiteStore) UpdateTodo(ctx context.Context, todo model.Todo) (*model.TodoWithRelations, error) {
	if todo.RecurrenceInterval < 1 {
		todo.RecurrenceInterval = 1
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE todos SET
			title = ?, notes = ?, notes_sensitive = ?,
			start_date = ?, end_date = ?, completed = ?,
			importance = ?, project_id = ?, category_id = ?, status_id = ?,
			parent_id = ?, type = ?, milestone_date = ?,
			recurrence_type = ?, recurrence_interval = ?, recurrence_end_date = ?,
			updated_at = ?
		WHERE id = ?`,
		todo.Title, todo.Notes, boolToInt(todo.NotesSensitive),
		todo.StartDate, todo.EndDate, boolToInt(todo.Completed),
		todo.Importance, todo.ProjectID, todo.CategoryID, todo.StatusID,
		todo.ParentID, todo.Type, todo.MilestoneDate,
		todo.RecurrenceType, todo.RecurrenceInterval, todo.RecurrenceEndDate,
		time.Now().UTC(), todo.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating todo %d: %w", todo.ID, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, nil
	}
	return s.GetTodo(ctx, todo.ID)
}

// DeleteTodo soft-deletes a todo. Returns false when the ID does not exist
// or is already in the trash.
func (s *SQLiteStore) DeleteTodo(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE todos SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL",
		time.Now().UTC(), time.Now().UTC(), id,
	)
	if err != nil {
		return false, fmt.Errorf("deleting todo %d: %w", id, err)
	}
	rows, _ := res.RowsAffected()
	return rows > 0, nil
}

// RestoreTodo brings a soft-deleted todo back from the trash.
func (s *SQLiteStore) RestoreTodo(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE todos SET deleted_at = NULL, updated_at = ? WHERE id = ? AND deleted_at IS NOT NULL",
		time.Now().UTC(), id,
	)
	if err != nil {
		return false, fmt.Errorf("restoring todo %d: %w", id, err)
	}
	rows, _ := res.RowsAffected()
	return rows > 0, nil
}

// PurgeTodo permanently removes a todo. Subtasks and link rows cascade.
// Irreversible; normally called from the trash view.
func (s *SQLiteStore) PurgeTodo(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("purging todo %d: %w", id, err)
	}
	rows, _ := res.RowsAffected()
	return rows > 0, nil
}

// ReorderTodos rewrites sort_order to the positional index of each ID in
// the supplied sequence, as a single all-or-nothing transaction.
func (s *SQLiteStore) ReorderTodos(ctx context.Context, ids []int64) error {
	return s.reorderRows(ctx, "todos", ids)
}

// reorderRows runs a positional sort_order rewrite for any table inside
// one transaction; partial application is never observable.
func (s *SQLiteStore) reorderRows(ctx context.Context, table string, ids []int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx,
		fmt.Sprintf("UPDATE %s SET sort_order = ? WHERE id = ?", table))
	if err != nil {
		return fmt.Errorf("preparing reorder statement: %w", err)
	}
	defer stmt.Close()

	for index, id := range ids {
		if _, err := stmt.ExecContext(ctx, index, id); err != nil {
			return fmt.Errorf("reordering %s row %d: %w", table, id, err)
		}
	}
	return tx.Commit()
}

// SearchTodos finds non-deleted todos whose title contains the query,
// capped at 10 results. excludeID, when non-nil, drops one todo from the
// results (used when linking, to avoid self-matches).
func (s *SQLiteStore) SearchTodos(ctx context.Context, query string, excludeID *int64) ([]model.TodoWithRelations, error) {
	q := todoSelect + " WHERE t.deleted_at IS NULL AND t.title LIKE ?"
	args := []interface{}{"%" + query + "%"}
	if excludeID != nil {
		q += " AND t.id != ?"
		args = append(args, *excludeID)
	}
	q += " LIMIT 10"

	rows, err := s.db.QueryxContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("searching todos: %w", err)
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
