package model

import "time"

// Project is a grouping container for related todos. Projects are
// soft-deleted: DeletedAt is set and the row stays queryable via the trash
// view until it is purged.
type Project struct {
	ID        int64      `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Color     string     `json:"color" db:"color"`
	SortOrder int        `json:"sort_order" db:"sort_order"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}
