package store

import (
	"context"
	"fmt"
	"time"

	"tododesk/internal/model"
)

// orderPair normalizes an unordered todo pair so the smaller ID comes
// first. Guarantees at most one stored row per pair.
func orderPair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

// LinkTodos creates a symmetric link between two todos. Self-links return
// false; duplicate links are benign no-ops; a reference to a missing todo
// returns false instead of an error.
func (s *SQLiteStore) LinkTodos(ctx context.Context, sourceID, targetID int64) (bool, error) {
	if sourceID == targetID {
		return false, nil
	}
	first, second := orderPair(sourceID, targetID)

	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO todo_links (source_id, target_id, created_at) VALUES (?, ?, ?)",
		first, second, time.Now().UTC(),
	)
	if err != nil {
		if isConstraintErr(err) {
			return false, nil
		}
		return false, fmt.Errorf("linking todos %d and %d: %w", sourceID, targetID, err)
	}
	return true, nil
}

// UnlinkTodos removes the link between two todos. Removing a missing link
// is a no-op.
func (s *SQLiteStore) UnlinkTodos(ctx context.Context, sourceID, targetID int64) (bool, error) {
	first, second := orderPair(sourceID, targetID)
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM todo_links WHERE source_id = ? AND target_id = ?",
		first, second,
	)
	if err != nil {
		return false, fmt.Errorf("unlinking todos %d and %d: %w", sourceID, targetID, err)
	}
	return true, nil
}

// GetLinkedTodos retrieves the non-deleted todos linked to the given todo,
// regardless of which side of the pair it is stored on.
func (s *SQLiteStore) GetLinkedTodos(ctx context.Context, todoID int64) ([]model.TodoWithRelations, error) {
	rows, err := s.db.QueryxContext(ctx, todoSelect+`
		WHERE t.deleted_at IS NULL AND t.id IN (
			SELECT target_id FROM todo_links WHERE source_id = ?
			UNION
			SELECT source_id FROM todo_links WHERE target_id = ?
		)`,
		todoID, todoID)
	if err != nil {
		return nil, fmt.Errorf("querying linked todos for %d: %w", todoID, err)
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

// LinkTodoPerson attaches a person to a todo. Duplicates are no-ops;
// missing endpoints return false.
func (s *SQLiteStore) LinkTodoPerson(ctx context.Context, todoID, personID int64) (bool, error) {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO todo_persons (todo_id, person_id, created_at) VALUES (?, ?, ?)",
		todoID, personID, time.Now().UTC(),
	)
	if err != nil {
		if isConstraintErr(err) {
			return false, nil
		}
		return false, fmt.Errorf("linking person %d to todo %d: %w", personID, todoID, err)
	}
	return true, nil
}

// UnlinkTodoPerson detaches a person from a todo.
func (s *SQLiteStore) UnlinkTodoPerson(ctx context.Context, todoID, personID int64) (bool, error) {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM todo_persons WHERE todo_id = ? AND person_id = ?",
		todoID, personID,
	)
	if err != nil {
		return false, fmt.Errorf("unlinking person %d from todo %d: %w", personID, todoID, err)
	}
	return true, nil
}

// GetTodoPersons retrieves the persons attached to a todo.
func (s *SQLiteStore) GetTodoPersons(ctx context.Context, todoID int64) ([]model.Person, error) {
	var persons []model.Person
	err := s.db.SelectContext(ctx, &persons, `
		SELECT p.* FROM persons p
		INNER JOIN todo_persons tp ON p.id = tp.person_id
		WHERE tp.todo_id = ?
		ORDER BY p.sort_order ASC`, todoID)
	if err != nil {
		return nil, fmt.Errorf("querying persons for todo %d: %w", todoID, err)
	}
	return persons, nil
}

// LinkProjectPerson attaches a person to a project. Duplicates are no-ops;
// missing endpoints return false. Stakeholder fields start empty.
func (s *SQLiteStore) LinkProjectPerson(ctx context.Context, projectID, personID int64) (bool, error) {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO project_persons (project_id, person_id, created_at) VALUES (?, ?, ?)",
		projectID, personID, time.Now().UTC(),
	)
	if err != nil {
		if isConstraintErr(err) {
			return false, nil
		}
		return false, fmt.Errorf("linking person %d to project %d: %w", personID, projectID, err)
	}
	return true, nil
}

// UnlinkProjectPerson detaches a person from a project, discarding the
// stakeholder fields of that membership.
func (s *SQLiteStore) UnlinkProjectPerson(ctx context.Context, projectID, personID int64) (bool, error) {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM project_persons WHERE project_id = ? AND person_id = ?",
		projectID, personID,
	)
	if err != nil {
		return false, fmt.Errorf("unlinking person %d from project %d: %w", personID, projectID, err)
	}
	return true, nil
}

// UpdateStakeholder overwrites the stakeholder analysis fields of a
// project membership. Returns false when the membership does not exist.
func (s *SQLiteStore) UpdateStakeholder(ctx context.Context, projectID, personID int64, data model.StakeholderData) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE project_persons SET
			influence_level = ?, interest_level = ?,
			stakeholder_type = ?, engagement_strategy = ?, notes = ?
		WHERE project_id = ? AND person_id = ?`,
		data.InfluenceLevel, data.InterestLevel,
		data.StakeholderType, data.EngagementStrategy, data.Notes,
		projectID, personID,
	)
	if err != nil {
		return false, fmt.Errorf("updating stakeholder data for person %d in project %d: %w",
			personID, projectID, err)
	}
	rows, _ := res.RowsAffected()
	return rows > 0, nil
}

// GetProjectMembers retrieves the persons attached to a project together
// with the stakeholder fields of each membership.
func (s *SQLiteStore) GetProjectMembers(ctx context.Context, projectID int64) ([]model.ProjectMember, error) {
	var members []model.ProjectMember
	err := s.db.SelectContext(ctx, &members, `
		SELECT p.*,
		       pp.influence_level, pp.interest_level,
		       pp.stakeholder_type, pp.engagement_strategy,
		       pp.notes AS stakeholder_notes
		FROM persons p
		INNER JOIN project_persons pp ON p.id = pp.person_id
		WHERE pp.project_id = ?
		ORDER BY p.sort_order ASC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("querying members of project %d: %w", projectID, err)
	}
	return members, nil
}
