package model

import "time"

// ExportVersion is the current export document format version.
const ExportVersion = 1

// Import modes.
const (
	ImportModeMerge   = "merge"
	ImportModeReplace = "replace"
)

// ExportData snapshots every table verbatim, including soft-deleted rows.
type ExportData struct {
	Projects       []Project       `json:"projects"`
	Categories     []Category      `json:"categories"`
	Statuses       []Status        `json:"statuses"`
	Todos          []Todo          `json:"todos"`
	TodoLinks      []TodoLink      `json:"todoLinks"`
	Subtasks       []Subtask       `json:"subtasks"`
	Persons        []Person        `json:"persons"`
	TodoPersons    []TodoPerson    `json:"todoPersons"`
	ProjectPersons []ProjectPerson `json:"projectPersons"`
}

// ExportDocument is the versioned portable document written by exports and
// accepted by imports.
type ExportDocument struct {
	Version    int         `json:"version"`
	ExportID   string      `json:"export_id,omitempty"`
	ExportDate time.Time   `json:"exportDate"`
	Data       *ExportData `json:"data"`
}
