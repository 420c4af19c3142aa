package model

import "time"

// TodoLink is a symmetric association between two todos. Rows are stored
// with SourceID < TargetID so an unordered pair maps to at most one row.
type TodoLink struct {
	ID        int64     `json:"id" db:"id"`
	SourceID  int64     `json:"source_id" db:"source_id"`
	TargetID  int64     `json:"target_id" db:"target_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TodoPerson attaches a person to a todo.
type TodoPerson struct {
	ID        int64     `json:"id" db:"id"`
	TodoID    int64     `json:"todo_id" db:"todo_id"`
	PersonID  int64     `json:"person_id" db:"person_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ProjectPerson attaches a person to a project and carries the stakeholder
// analysis fields for that membership.
type ProjectPerson struct {
	ID                 int64     `json:"id" db:"id"`
	ProjectID          int64     `json:"project_id" db:"project_id"`
	PersonID           int64     `json:"person_id" db:"person_id"`
	InfluenceLevel     *int      `json:"influence_level,omitempty" db:"influence_level"`
	InterestLevel      *int      `json:"interest_level,omitempty" db:"interest_level"`
	StakeholderType    *string   `json:"stakeholder_type,omitempty" db:"stakeholder_type"`
	EngagementStrategy *string   `json:"engagement_strategy,omitempty" db:"engagement_strategy"`
	Notes              string    `json:"notes" db:"notes"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
}
