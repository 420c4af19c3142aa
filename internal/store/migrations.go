package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations. Each migration's
// version must be sequential starting from 1. Migrations are additive and
// never destroy data; at most they backfill a new column from a legacy one.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS projects (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	color      TEXT NOT NULL DEFAULT '#0f4c75',
	sort_order INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS categories (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	symbol     TEXT NOT NULL DEFAULT '',
	color      TEXT NOT NULL DEFAULT '#9b59b6',
	sort_order INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS todos (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT NOT NULL,
	notes       TEXT NOT NULL DEFAULT '',
	deadline    TEXT,
	completed   INTEGER NOT NULL DEFAULT 0,
	sort_order  INTEGER NOT NULL DEFAULT 0,
	importance  INTEGER,
	project_id  INTEGER REFERENCES projects(id) ON DELETE SET NULL,
	category_id INTEGER REFERENCES categories(id) ON DELETE SET NULL,
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS todo_links (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	source_id  INTEGER NOT NULL REFERENCES todos(id) ON DELETE CASCADE,
	target_id  INTEGER NOT NULL REFERENCES todos(id) ON DELETE CASCADE,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(source_id, target_id)
);

CREATE INDEX IF NOT EXISTS idx_todos_project_id ON todos(project_id);
CREATE INDEX IF NOT EXISTS idx_todos_sort_order ON todos(sort_order);
CREATE INDEX IF NOT EXISTS idx_todo_links_source ON todo_links(source_id);
CREATE INDEX IF NOT EXISTS idx_todo_links_target ON todo_links(target_id);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS statuses (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	color      TEXT NOT NULL DEFAULT '#6b7280',
	sort_order INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS persons (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL,
	email       TEXT NOT NULL DEFAULT '',
	phone       TEXT NOT NULL DEFAULT '',
	company     TEXT NOT NULL DEFAULT '',
	role        TEXT NOT NULL DEFAULT '',
	github_name TEXT NOT NULL DEFAULT '',
	notes       TEXT NOT NULL DEFAULT '',
	color       TEXT NOT NULL DEFAULT '#6b7280',
	sort_order  INTEGER NOT NULL DEFAULT 0,
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS subtasks (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	todo_id    INTEGER NOT NULL REFERENCES todos(id) ON DELETE CASCADE,
	title      TEXT NOT NULL,
	completed  INTEGER NOT NULL DEFAULT 0,
	sort_order INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS todo_persons (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	todo_id    INTEGER NOT NULL REFERENCES todos(id) ON DELETE CASCADE,
	person_id  INTEGER NOT NULL REFERENCES persons(id) ON DELETE CASCADE,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(todo_id, person_id)
);

CREATE TABLE IF NOT EXISTS project_persons (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	project_id          INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	person_id           INTEGER NOT NULL REFERENCES persons(id) ON DELETE CASCADE,
	influence_level     INTEGER,
	interest_level      INTEGER,
	stakeholder_type    TEXT,
	engagement_strategy TEXT,
	notes               TEXT NOT NULL DEFAULT '',
	created_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(project_id, person_id)
);

ALTER TABLE todos ADD COLUMN status_id INTEGER REFERENCES statuses(id) ON DELETE SET NULL;

CREATE INDEX IF NOT EXISTS idx_subtasks_todo_id ON subtasks(todo_id);
CREATE INDEX IF NOT EXISTS idx_todo_persons_todo_id ON todo_persons(todo_id);
CREATE INDEX IF NOT EXISTS idx_project_persons_project_id ON project_persons(project_id);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
	{
		version: 3,
		sql: `
ALTER TABLE todos ADD COLUMN start_date TEXT;
ALTER TABLE todos ADD COLUMN end_date TEXT;
ALTER TABLE todos ADD COLUMN recurrence_type TEXT;
ALTER TABLE todos ADD COLUMN recurrence_interval INTEGER NOT NULL DEFAULT 1;
ALTER TABLE todos ADD COLUMN recurrence_end_date TEXT;
ALTER TABLE todos ADD COLUMN type TEXT NOT NULL DEFAULT 'todo';
ALTER TABLE todos ADD COLUMN milestone_date TEXT;
ALTER TABLE todos ADD COLUMN parent_id INTEGER REFERENCES todos(id) ON DELETE SET NULL;
ALTER TABLE todos ADD COLUMN notes_sensitive INTEGER NOT NULL DEFAULT 0;

UPDATE todos SET end_date = deadline WHERE end_date IS NULL AND deadline IS NOT NULL;

CREATE INDEX IF NOT EXISTS idx_todos_parent_id ON todos(parent_id);
CREATE INDEX IF NOT EXISTS idx_todos_type ON todos(type);

INSERT INTO schema_version (version) VALUES (3);
`,
	},
	{
		version: 4,
		sql: `
ALTER TABLE todos ADD COLUMN deleted_at DATETIME;
ALTER TABLE projects ADD COLUMN deleted_at DATETIME;

CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_todos_deleted_at ON todos(deleted_at);
CREATE INDEX IF NOT EXISTS idx_projects_deleted_at ON projects(deleted_at);

INSERT INTO schema_version (version) VALUES (4);
`,
	},
}
