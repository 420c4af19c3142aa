package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tododesk/internal/model"
)

const defaultPersonColor = "#6b7280"

// GetAllPersons retrieves all persons ordered by sort_order.
func (s *SQLiteStore) GetAllPersons(ctx context.Context) ([]model.Person, error) {
	var persons []model.Person
	err := s.db.SelectContext(ctx, &persons,
		"SELECT * FROM persons ORDER BY sort_order ASC")
	if err != nil {
		return nil, fmt.Errorf("querying persons: %w", err)
	}
	return persons, nil
}

// GetPerson retrieves a single person by ID. Returns nil without error
// when the ID does not exist.
func (s *SQLiteStore) GetPerson(ctx context.Context, id int64) (*model.Person, error) {
	var p model.Person
	err := s.db.GetContext(ctx, &p, "SELECT * FROM persons WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting person %d: %w", id, err)
	}
	return &p, nil
}

// CreatePerson inserts a new person with the next sort_order.
func (s *SQLiteStore) CreatePerson(ctx context.Context, person model.Person) (*model.Person, error) {
	if person.Color == "" {
		person.Color = defaultPersonColor
	}
	now := time.Now().UTC()

	var sortOrder int
	if err := s.db.GetContext(ctx, &sortOrder,
		"SELECT COALESCE(MAX(sort_order) + 1, 0) FROM persons"); err != nil {
		return nil, fmt.Errorf("getting next sort_order: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO persons (
			name, email, phone, company, role, github_name, notes, color,
			sort_order, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		person.Name, person.Email, person.Phone, person.Company, person.Role,
		person.GithubName, person.Notes, person.Color, sortOrder, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("creating person: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading person id: %w", err)
	}
	return s.GetPerson(ctx, id)
}

// UpdatePerson overwrites a person's fields by ID and touches updated_at.
// Returns nil without error when the ID does not exist.
func (s *SQLiteStore) UpdatePerson(ctx context.Context, person model.Person) (*model.Person, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE persons SET
			name = ?, email = ?, phone = ?, company = ?, role = ?,
			github_name = ?, notes = ?, color = ?, updated_at = ?
		WHERE id = ?`,
		person.Name, person.Email, person.Phone, person.Company, person.Role,
		person.GithubName, person.Notes, person.Color, time.Now().UTC(),
		person.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating person %d: %w", person.ID, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, nil
	}
	return s.GetPerson(ctx, person.ID)
}

// DeletePerson hard-deletes a person. Todo and project memberships cascade.
func (s *SQLiteStore) DeletePerson(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM persons WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting person %d: %w", id, err)
	}
	rows, _ := res.RowsAffected()
	return rows > 0, nil
}

// ReorderPersons rewrites sort_order to positional indexes in one
// transaction.
func (s *SQLiteStore) ReorderPersons(ctx context.Context, ids []int64) error {
	return s.reorderRows(ctx, "persons", ids)
}
