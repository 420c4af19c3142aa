// Package validate coerces and checks externally supplied values before
// they reach the store. Values arrive untyped from the JSON/IPC boundary,
// so every check accepts `any` and returns the coerced Go value or an
// *Error carrying a field-specific message.
package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Error is the validation failure kind. It is raised before any store
// mutation and must never reach the store layer.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}

func errf(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

var (
	colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// toInt64 coerces the numeric representations the boundary can produce.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n == math.Trunc(n) {
			return int64(n), true
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return i, true
		}
	}
	return 0, false
}

// ID validates a required positive integer identifier.
func ID(v any, field string) (int64, error) {
	if v == nil {
		return 0, errf(field, "is required")
	}
	n, ok := toInt64(v)
	if !ok || n <= 0 {
		return 0, errf(field, "must be a positive integer")
	}
	return n, nil
}

// OptionalID validates an identifier that may be absent.
func OptionalID(v any, field string) (*int64, error) {
	if v == nil {
		return nil, nil
	}
	n, err := ID(v, field)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// String validates a required non-empty string of bounded length.
func String(v any, field string, maxLen int) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errf(field, "must be a string")
	}
	if len(s) == 0 {
		return "", errf(field, "cannot be empty")
	}
	if len(s) > maxLen {
		return "", errf(field, "exceeds maximum length of %d", maxLen)
	}
	return s, nil
}

// OptionalString validates a string that may be absent or empty.
func OptionalString(v any, field string, maxLen int) (string, error) {
	if v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", errf(field, "must be a string")
	}
	if len(s) > maxLen {
		return "", errf(field, "exceeds maximum length of %d", maxLen)
	}
	return s, nil
}

// Color validates a hex color string and normalizes it to lowercase.
func Color(v any, field string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errf(field, "must be a string")
	}
	if !colorPattern.MatchString(s) {
		return "", errf(field, "must be a valid hex color (e.g., #ffffff)")
	}
	return strings.ToLower(s), nil
}

// OptionalColor validates a hex color, falling back to def when absent.
func OptionalColor(v any, field, def string) (string, error) {
	if v == nil || v == "" {
		return def, nil
	}
	return Color(v, field)
}

// IDList validates a slice of identifiers. Accepts []any from decoded JSON
// or a typed []int64.
func IDList(v any, field string) ([]int64, error) {
	var raw []any
	switch list := v.(type) {
	case []int64:
		raw = make([]any, len(list))
		for i, n := range list {
			raw[i] = n
		}
	case []any:
		raw = list
	default:
		return nil, errf(field, "must be an array")
	}
	if len(raw) > 10000 {
		return nil, errf(field, "exceeds maximum length of 10000")
	}
	ids := make([]int64, 0, len(raw))
	for i, item := range raw {
		id, err := ID(item, fmt.Sprintf("%s[%d]", field, i))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// OptionalDate validates a YYYY-MM-DD calendar string that may be absent.
func OptionalDate(v any, field string) (*string, error) {
	if v == nil || v == "" {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, errf(field, "must be a string")
	}
	if !datePattern.MatchString(s) {
		return nil, errf(field, "must be in YYYY-MM-DD format")
	}
	return &s, nil
}

// OptionalImportance validates an importance level of 1-5 or absent.
func OptionalImportance(v any) (*int, error) {
	if v == nil {
		return nil, nil
	}
	n, ok := toInt64(v)
	if !ok || n < 1 || n > 5 {
		return nil, errf("importance", "must be between 1 and 5")
	}
	i := int(n)
	return &i, nil
}

// Bool validates a boolean, accepting 0/1 and defaulting when absent.
func Bool(v any, field string, def bool) (bool, error) {
	switch b := v.(type) {
	case nil:
		return def, nil
	case bool:
		return b, nil
	case int:
		if b == 0 || b == 1 {
			return b == 1, nil
		}
	case float64:
		if b == 0 || b == 1 {
			return b == 1, nil
		}
	}
	return false, errf(field, "must be a boolean")
}

// OptionalRecurrenceType validates a recurrence period or absent.
func OptionalRecurrenceType(v any) (*string, error) {
	if v == nil || v == "" {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, errf("recurrence_type", "must be a string")
	}
	switch s {
	case "daily", "weekly", "monthly", "yearly":
		return &s, nil
	}
	return nil, errf("recurrence_type", "must be one of: daily, weekly, monthly, yearly")
}

// OptionalPositiveInt validates a positive integer up to max, defaulting
// to 1 when absent.
func OptionalPositiveInt(v any, field string, max int) (int, error) {
	if v == nil {
		return 1, nil
	}
	n, ok := toInt64(v)
	if !ok || n < 1 || n > int64(max) {
		return 0, errf(field, "must be a positive integer up to %d", max)
	}
	return int(n), nil
}

// SearchQuery validates a search string. Empty queries are allowed.
func SearchQuery(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errf("query", "must be a string")
	}
	if len(s) > 500 {
		return "", errf("query", "exceeds maximum length of 500")
	}
	return s, nil
}

// ImportMode normalizes an import mode, falling back to merge.
func ImportMode(v any) string {
	if s, ok := v.(string); ok && s == "replace" {
		return "replace"
	}
	return "merge"
}
