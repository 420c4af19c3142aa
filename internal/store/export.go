package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tododesk/internal/model"
)

// ExportData snapshots every table into a portable document. Soft-deleted
// rows are included so a restore round-trips the trash.
func (s *SQLiteStore) ExportData(ctx context.Context) (*model.ExportDocument, error) {
	data := &model.ExportData{}

	type snapshot struct {
		dest  any
		query string
	}
	snapshots := []snapshot{
		{&data.Projects, "SELECT * FROM projects ORDER BY id"},
		{&data.Categories, "SELECT * FROM categories ORDER BY id"},
		{&data.Statuses, "SELECT * FROM statuses ORDER BY id"},
		{&data.Todos, "SELECT * FROM todos ORDER BY id"},
		{&data.TodoLinks, "SELECT * FROM todo_links ORDER BY id"},
		{&data.Subtasks, "SELECT * FROM subtasks ORDER BY id"},
		{&data.Persons, "SELECT * FROM persons ORDER BY id"},
		{&data.TodoPersons, "SELECT * FROM todo_persons ORDER BY id"},
		{&data.ProjectPersons, "SELECT * FROM project_persons ORDER BY id"},
	}
	for _, snap := range snapshots {
		if err := s.db.SelectContext(ctx, snap.dest, snap.query); err != nil {
			return nil, fmt.Errorf("exporting data: %w", err)
		}
	}

	return &model.ExportDocument{
		Version:    model.ExportVersion,
		ExportID:   uuid.New().String(),
		ExportDate: time.Now().UTC(),
		Data:       data,
	}, nil
}

// ImportData loads an export document in a single transaction. In replace
// mode all existing rows are removed first; merge mode inserts alongside
// existing rows and never deduplicates. Imported rows get fresh identifiers
// and every stored reference is remapped through old-to-new id tables;
// references to ids absent from the document are dropped silently.
func (s *SQLiteStore) ImportData(ctx context.Context, doc *model.ExportDocument, mode string) error {
	if doc == nil || doc.Data == nil {
		return fmt.Errorf("import document has no data")
	}
	data := doc.Data

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning import transaction: %w", err)
	}
	defer tx.Rollback()

	if mode == model.ImportModeReplace {
		// Children first so foreign keys never block the wipe.
		for _, table := range []string{
			"todo_links", "todo_persons", "project_persons", "subtasks",
			"todos", "projects", "categories", "statuses", "persons",
		} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("clearing %s: %w", table, err)
			}
		}
	}

	projectIDs := make(map[int64]int64, len(data.Projects))
	for _, p := range data.Projects {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO projects (name, color, sort_order, deleted_at, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			p.Name, p.Color, p.SortOrder, p.DeletedAt, p.CreatedAt, p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("importing project %q: %w", p.Name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading imported project id: %w", err)
		}
		projectIDs[p.ID] = id
	}

	categoryIDs := make(map[int64]int64, len(data.Categories))
	for _, c := range data.Categories {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO categories (name, symbol, color, sort_order, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			c.Name, c.Symbol, c.Color, c.SortOrder, c.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("importing category %q: %w", c.Name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading imported category id: %w", err)
		}
		categoryIDs[c.ID] = id
	}

	statusIDs := make(map[int64]int64, len(data.Statuses))
	for _, st := range data.Statuses {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO statuses (name, color, sort_order, created_at)
			VALUES (?, ?, ?, ?)`,
			st.Name, st.Color, st.SortOrder, st.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("importing status %q: %w", st.Name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading imported status id: %w", err)
		}
		statusIDs[st.ID] = id
	}

	personIDs := make(map[int64]int64, len(data.Persons))
	for _, p := range data.Persons {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO persons (
				name, email, phone, company, role, github_name, notes, color,
				sort_order, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.Name, p.Email, p.Phone, p.Company, p.Role, p.GithubName,
			p.Notes, p.Color, p.SortOrder, p.CreatedAt, p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("importing person %q: %w", p.Name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading imported person id: %w", err)
		}
		personIDs[p.ID] = id
	}

	// Todos keep their parent_id for a second pass since a parent may be
	// imported after its child.
	todoIDs := make(map[int64]int64, len(data.Todos))
	for _, t := range data.Todos {
		projectID := remapRef(t.ProjectID, projectIDs)
		categoryID := remapRef(t.CategoryID, categoryIDs)
		statusID := remapRef(t.StatusID, statusIDs)

		todoType := t.Type
		if todoType == "" {
			todoType = model.TodoTypeTodo
		}
		interval := t.RecurrenceInterval
		if interval < 1 {
			interval = 1
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO todos (
				title, notes, notes_sensitive, deadline, start_date, end_date,
				completed, sort_order, importance, project_id, category_id,
				status_id, type, milestone_date, recurrence_type,
				recurrence_interval, recurrence_end_date, deleted_at,
				created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.Title, t.Notes, boolToInt(t.NotesSensitive), t.Deadline,
			t.StartDate, t.EndDate, boolToInt(t.Completed), t.SortOrder,
			t.Importance, projectID, categoryID, statusID, todoType,
			t.MilestoneDate, t.RecurrenceType, interval, t.RecurrenceEndDate,
			t.DeletedAt, t.CreatedAt, t.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("importing todo %q: %w", t.Title, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading imported todo id: %w", err)
		}
		todoIDs[t.ID] = id
	}

	for _, t := range data.Todos {
		if t.ParentID == nil {
			continue
		}
		parentID, ok := todoIDs[*t.ParentID]
		if !ok {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE todos SET parent_id = ? WHERE id = ?",
			parentID, todoIDs[t.ID]); err != nil {
			return fmt.Errorf("linking imported todo %q to its parent: %w", t.Title, err)
		}
	}

	for _, sub := range data.Subtasks {
		todoID, ok := todoIDs[sub.TodoID]
		if !ok {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO subtasks (todo_id, title, completed, sort_order, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			todoID, sub.Title, boolToInt(sub.Completed), sub.SortOrder, sub.CreatedAt,
		); err != nil {
			return fmt.Errorf("importing subtask %q: %w", sub.Title, err)
		}
	}

	// Remapped pairs can invert order, so normalize again before insert.
	for _, link := range data.TodoLinks {
		sourceID, okSource := todoIDs[link.SourceID]
		targetID, okTarget := todoIDs[link.TargetID]
		if !okSource || !okTarget || sourceID == targetID {
			continue
		}
		first, second := orderPair(sourceID, targetID)
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO todo_links (source_id, target_id, created_at) VALUES (?, ?, ?)",
			first, second, link.CreatedAt,
		); err != nil {
			return fmt.Errorf("importing todo link: %w", err)
		}
	}

	for _, tp := range data.TodoPersons {
		todoID, okTodo := todoIDs[tp.TodoID]
		personID, okPerson := personIDs[tp.PersonID]
		if !okTodo || !okPerson {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO todo_persons (todo_id, person_id, created_at) VALUES (?, ?, ?)",
			todoID, personID, tp.CreatedAt,
		); err != nil {
			return fmt.Errorf("importing todo person link: %w", err)
		}
	}

	for _, pp := range data.ProjectPersons {
		projectID, okProject := projectIDs[pp.ProjectID]
		personID, okPerson := personIDs[pp.PersonID]
		if !okProject || !okPerson {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO project_persons (
				project_id, person_id, influence_level, interest_level,
				stakeholder_type, engagement_strategy, notes, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			projectID, personID, pp.InfluenceLevel, pp.InterestLevel,
			pp.StakeholderType, pp.EngagementStrategy, pp.Notes, pp.CreatedAt,
		); err != nil {
			return fmt.Errorf("importing project person link: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}
	return nil
}

// remapRef translates an optional foreign key through an id map, dropping
// it to NULL when the referenced row is not part of the import.
func remapRef(ref *int64, ids map[int64]int64) *int64 {
	if ref == nil {
		return nil
	}
	id, ok := ids[*ref]
	if !ok {
		return nil
	}
	return &id
}
