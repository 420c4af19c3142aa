package store

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"tododesk/internal/model"
)

// SQLiteStore implements the persistence layer using a local SQLite
// database. It owns the single database handle; no other component
// touches storage directly.
type SQLiteStore struct {
	db     *sqlx.DB
	logger *log.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, enables
// WAL mode and foreign keys, runs any pending schema migrations, and seeds
// the default statuses when the table is empty.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys.
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{
		db: db,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "store",
		}),
	}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	if err := s.seedDefaultStatuses(); err != nil {
		db.Close()
		return nil, fmt.Errorf("seeding statuses: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		s.logger.Debug("applying migration", "version", m.version)
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// seedDefaultStatuses inserts the four default workflow statuses, but only
// when the table is completely empty.
func (s *SQLiteStore) seedDefaultStatuses() error {
	var count int
	if err := s.db.Get(&count, "SELECT COUNT(*) FROM statuses"); err != nil {
		return fmt.Errorf("counting statuses: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []model.Status{
		{Name: "Todo", Color: "#3b82f6", SortOrder: 0},
		{Name: "In Progress", Color: "#f59e0b", SortOrder: 1},
		{Name: "Done", Color: "#10b981", SortOrder: 2},
		{Name: "Backlog", Color: "#6b7280", SortOrder: 3},
	}
	for _, st := range defaults {
		if _, err := s.CreateStatus(context.Background(), st); err != nil {
			return err
		}
	}
	s.logger.Debug("seeded default statuses", "count", len(defaults))
	return nil
}

// isConstraintErr reports whether err is a SQLite constraint violation
// (uniqueness or foreign key). Link operations swallow these by returning
// a boolean failure flag instead of an error.
func isConstraintErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "constraint")
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
