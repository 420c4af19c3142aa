package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// SetSetting stores a setting value as JSON-encoded text, overwriting any
// previous value. Settings have no delete operation, only overwrite.
func (s *SQLiteStore) SetSetting(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding setting %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(raw),
	)
	if err != nil {
		return fmt.Errorf("storing setting %s: %w", key, err)
	}
	return nil
}

// GetSetting retrieves a setting and decodes its JSON value, falling back
// to the raw string when decoding fails. ok is false for a missing key.
func (s *SQLiteStore) GetSetting(ctx context.Context, key string) (value any, ok bool, err error) {
	var raw string
	err = s.db.GetContext(ctx, &raw, "SELECT value FROM settings WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading setting %s: %w", key, err)
	}

	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return raw, true, nil
	}
	return decoded, true, nil
}

// GetAllSettings retrieves every stored setting, decoded the same way as
// GetSetting.
func (s *SQLiteStore) GetAllSettings(ctx context.Context) (map[string]any, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("querying settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]any)
	for rows.Next() {
		var key, raw string
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, fmt.Errorf("scanning setting row: %w", err)
		}
		var decoded any
		if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
			settings[key] = raw
			continue
		}
		settings[key] = decoded
	}
	return settings, rows.Err()
}
