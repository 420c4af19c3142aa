package model

import "time"

// Subtask is a small sub-entry owned exclusively by one todo. Its lifecycle
// is bound to the parent (CASCADE on hard delete).
type Subtask struct {
	ID        int64     `json:"id" db:"id"`
	TodoID    int64     `json:"todo_id" db:"todo_id"`
	Title     string    `json:"title" db:"title"`
	Completed bool      `json:"completed" db:"completed"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
