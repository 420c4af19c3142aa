package model_test

import (
	"os"
	"path/filepath"
	"testing"

	"tododesk/internal/model"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := model.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("loading missing config: %v", err)
	}
	if cfg.HistoryLimit != 50 {
		t.Errorf("default history_limit = %d, want 50", cfg.HistoryLimit)
	}
	if cfg.ImportMaxBytes != 50<<20 {
		t.Errorf("default import_max_bytes = %d, want %d", cfg.ImportMaxBytes, 50<<20)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("default log_level = %q, want info", cfg.LogLevel)
	}
	if cfg.DBPath == "" {
		t.Error("default db_path is empty")
	}
}

func TestLoadConfigReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "db_path: /tmp/custom.db\nhistory_limit: 10\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := model.LoadConfig(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if cfg.DBPath != "/tmp/custom.db" {
		t.Errorf("db_path = %q", cfg.DBPath)
	}
	if cfg.HistoryLimit != 10 {
		t.Errorf("history_limit = %d, want 10", cfg.HistoryLimit)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level = %q, want debug", cfg.LogLevel)
	}
	// Unset keys keep their defaults.
	if cfg.ImportMaxBytes != 50<<20 {
		t.Errorf("import_max_bytes = %d, want default", cfg.ImportMaxBytes)
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := &model.AppConfig{
		DBPath:         "/data/todos.db",
		HistoryLimit:   25,
		ImportMaxBytes: 1 << 20,
		LogLevel:       "warn",
	}
	if err := model.SaveConfig(path, want); err != nil {
		t.Fatalf("saving config: %v", err)
	}

	got, err := model.LoadConfig(path)
	if err != nil {
		t.Fatalf("reloading config: %v", err)
	}
	if *got != *want {
		t.Errorf("reloaded config = %+v, want %+v", got, want)
	}
}
