package model

import "time"

// Person is a contact that can be attached to todos and projects.
// Hard-deleted; join rows cascade.
type Person struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"`
	Phone      string    `json:"phone" db:"phone"`
	Company    string    `json:"company" db:"company"`
	Role       string    `json:"role" db:"role"`
	GithubName string    `json:"github_name" db:"github_name"`
	Notes      string    `json:"notes" db:"notes"`
	Color      string    `json:"color" db:"color"`
	SortOrder  int       `json:"sort_order" db:"sort_order"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// StakeholderData carries the analysis fields attached to a person's
// membership in a project. Nil pointer fields clear the stored value.
type StakeholderData struct {
	InfluenceLevel     *int    `json:"influence_level,omitempty"`
	InterestLevel      *int    `json:"interest_level,omitempty"`
	StakeholderType    *string `json:"stakeholder_type,omitempty"`
	EngagementStrategy *string `json:"engagement_strategy,omitempty"`
	Notes              string  `json:"notes"`
}

// ProjectMember is a read model: a person enriched with the stakeholder
// fields of their project membership.
type ProjectMember struct {
	Person
	InfluenceLevel     *int    `json:"influence_level,omitempty" db:"influence_level"`
	InterestLevel      *int    `json:"interest_level,omitempty" db:"interest_level"`
	StakeholderType    *string `json:"stakeholder_type,omitempty" db:"stakeholder_type"`
	EngagementStrategy *string `json:"engagement_strategy,omitempty" db:"engagement_strategy"`
	StakeholderNotes   string  `json:"stakeholder_notes" db:"stakeholder_notes"`
}
