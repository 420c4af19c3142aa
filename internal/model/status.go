package model

import "time"

// Status is a workflow state for todos. The store seeds four defaults
// (Todo, In Progress, Done, Backlog) when the table is empty.
type Status struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Color     string    `json:"color" db:"color"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
