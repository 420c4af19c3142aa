package store_test

import (
	"context"
	"testing"

	"tododesk/tests/testutil"
)

func TestSettingsRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := s.SetSetting(ctx, "theme", "dark"); err != nil {
		t.Fatalf("setting theme: %v", err)
	}
	value, ok, err := s.GetSetting(ctx, "theme")
	if err != nil {
		t.Fatalf("getting theme: %v", err)
	}
	if !ok || value != "dark" {
		t.Errorf("GetSetting = (%v, %v), want (dark, true)", value, ok)
	}

	// Overwrite with a different type.
	if err := s.SetSetting(ctx, "theme", true); err != nil {
		t.Fatalf("overwriting theme: %v", err)
	}
	value, ok, err = s.GetSetting(ctx, "theme")
	if err != nil || !ok {
		t.Fatalf("getting overwritten theme: (%v, %v)", ok, err)
	}
	if value != true {
		t.Errorf("overwritten value = %v, want true", value)
	}
}

func TestGetSettingMissing(t *testing.T) {
	s := testutil.NewTestStore(t)

	value, ok, err := s.GetSetting(context.Background(), "never_set")
	if err != nil {
		t.Fatalf("getting missing setting: %v", err)
	}
	if ok || value != nil {
		t.Errorf("missing setting = (%v, %v), want (nil, false)", value, ok)
	}
}

func TestGetAllSettings(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	s.SetSetting(ctx, "theme", "light")
	s.SetSetting(ctx, "sidebar_collapsed", true)
	s.SetSetting(ctx, "last_selected_project", 3)

	all, err := s.GetAllSettings(ctx)
	if err != nil {
		t.Fatalf("getting all settings: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d settings, want 3", len(all))
	}
	if all["theme"] != "light" {
		t.Errorf("theme = %v, want light", all["theme"])
	}
	if all["sidebar_collapsed"] != true {
		t.Errorf("sidebar_collapsed = %v, want true", all["sidebar_collapsed"])
	}
	// JSON numbers decode as float64.
	if all["last_selected_project"] != float64(3) {
		t.Errorf("last_selected_project = %v, want 3", all["last_selected_project"])
	}
}
