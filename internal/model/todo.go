package model

import "time"

// Todo type constants.
const (
	TodoTypeTodo      = "todo"
	TodoTypeNote      = "note"
	TodoTypeMilestone = "milestone"
)

// Recurrence period constants.
const (
	RecurrenceDaily   = "daily"
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
	RecurrenceYearly  = "yearly"
)

// Todo is the central entity. Calendar dates (start/end, milestone,
// recurrence end) are YYYY-MM-DD strings, not timestamps. Soft-deleted
// todos carry DeletedAt and surface only through the trash scope.
type Todo struct {
	ID             int64   `json:"id" db:"id"`
	Title          string  `json:"title" db:"title"`
	Notes          string  `json:"notes" db:"notes"`
	NotesSensitive bool    `json:"notes_sensitive" db:"notes_sensitive"`
	StartDate      *string `json:"start_date,omitempty" db:"start_date"`
	EndDate        *string `json:"end_date,omitempty" db:"end_date"`
	Completed      bool    `json:"completed" db:"completed"`
	SortOrder      int     `json:"sort_order" db:"sort_order"`
	Importance     *int    `json:"importance,omitempty" db:"importance"`
	ProjectID      *int64  `json:"project_id,omitempty" db:"project_id"`
	CategoryID     *int64  `json:"category_id,omitempty" db:"category_id"`
	StatusID       *int64  `json:"status_id,omitempty" db:"status_id"`
	ParentID       *int64  `json:"parent_id,omitempty" db:"parent_id"`
	Type           string  `json:"type" db:"type"`
	MilestoneDate  *string `json:"milestone_date,omitempty" db:"milestone_date"`

	RecurrenceType     *string `json:"recurrence_type,omitempty" db:"recurrence_type"`
	RecurrenceInterval int     `json:"recurrence_interval" db:"recurrence_interval"`
	RecurrenceEndDate  *string `json:"recurrence_end_date,omitempty" db:"recurrence_end_date"`

	// Deadline is the legacy single-date column, superseded by EndDate.
	// The migration backfills EndDate from it and keeps the column.
	Deadline *string `json:"deadline,omitempty" db:"deadline"`

	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// TodoWithRelations is the read model returned by todo queries: the row
// plus denormalized display fields from related entities, assembled by
// read-time joins and never stored.
type TodoWithRelations struct {
	Todo
	ProjectName      *string `json:"project_name,omitempty" db:"project_name"`
	ProjectColor     *string `json:"project_color,omitempty" db:"project_color"`
	CategoryName     *string `json:"category_name,omitempty" db:"category_name"`
	CategorySymbol   *string `json:"category_symbol,omitempty" db:"category_symbol"`
	StatusName       *string `json:"status_name,omitempty" db:"status_name"`
	StatusColor      *string `json:"status_color,omitempty" db:"status_color"`
	SubtaskCount     int     `json:"subtask_count" db:"subtask_count"`
	SubtaskDoneCount int     `json:"subtask_done_count" db:"subtask_done_count"`
}

// SearchResults holds the three independent result lists of a global
// search. Lists are capped separately and never merged or ranked.
type SearchResults struct {
	Todos    []TodoWithRelations `json:"todos"`
	Persons  []Person            `json:"persons"`
	Projects []Project           `json:"projects"`
}
