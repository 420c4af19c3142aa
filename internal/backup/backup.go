// Package backup moves export documents between the store and files on
// disk, validating incoming documents before any row is written.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"tododesk/internal/model"
	"tododesk/internal/store"
)

// MaxImportBytes caps the size of an import file read into memory.
const MaxImportBytes = 50 << 20

const exportSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["data"],
	"properties": {
		"version": {"type": "integer"},
		"export_id": {"type": "string"},
		"exportDate": {"type": "string"},
		"data": {
			"type": "object",
			"properties": {
				"projects": {"type": "array"},
				"categories": {"type": "array"},
				"statuses": {"type": "array"},
				"todos": {"type": "array"},
				"todoLinks": {"type": "array"},
				"subtasks": {"type": "array"},
				"persons": {"type": "array"},
				"todoPersons": {"type": "array"},
				"projectPersons": {"type": "array"}
			}
		}
	}
}`

var schema = jsonschema.MustCompileString("export.schema.json", exportSchema)

// Result reports the outcome of an import in a form callers can surface
// directly.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ExportToFile snapshots the store into an indented JSON document at path.
func ExportToFile(ctx context.Context, s *store.SQLiteStore, path string) (*model.ExportDocument, error) {
	doc, err := s.ExportData(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return nil, fmt.Errorf("writing export file: %w", err)
	}
	return doc, nil
}

// ImportFromFile reads, validates, and imports an export document. The
// file is rejected before parsing when it exceeds maxBytes (non-positive
// maxBytes falls back to MaxImportBytes), and validated against the
// document schema before the store transaction starts.
func ImportFromFile(ctx context.Context, s *store.SQLiteStore, path, mode string, maxBytes int64) Result {
	if maxBytes <= 0 {
		maxBytes = MaxImportBytes
	}

	info, err := os.Stat(path)
	if err != nil {
		return failure(fmt.Errorf("reading import file: %w", err))
	}
	if info.Size() > maxBytes {
		return failure(fmt.Errorf("import file is %d bytes, limit is %d", info.Size(), maxBytes))
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return failure(fmt.Errorf("reading import file: %w", err))
	}

	var untyped any
	if err := json.Unmarshal(raw, &untyped); err != nil {
		return failure(fmt.Errorf("parsing import file: %w", err))
	}
	if err := schema.Validate(untyped); err != nil {
		return failure(fmt.Errorf("validating import file: %w", err))
	}

	var doc model.ExportDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return failure(fmt.Errorf("decoding import file: %w", err))
	}

	if err := s.ImportData(ctx, &doc, mode); err != nil {
		return failure(err)
	}
	return Result{Success: true}
}

func failure(err error) Result {
	return Result{Error: err.Error()}
}
